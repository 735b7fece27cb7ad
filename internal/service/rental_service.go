package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"carmarket/internal/cache"
	"carmarket/internal/errors"
	"carmarket/internal/model"
	"carmarket/internal/repository"
)

// RentalPatch carries the mutable fields of a rental. Nil fields are left
// untouched.
type RentalPatch struct {
	Status     *model.RentalStatus
	TotalPrice *decimal.Decimal
}

// RentalService orchestrates the rental lifecycle across cars, users and
// rentals.
type RentalService interface {
	CreateRental(ctx context.Context, carID uuid.UUID, startDate, endDate time.Time, callerID uuid.UUID) (*model.Rental, error)
	GetRental(ctx context.Context, id, callerID uuid.UUID, callerRole model.Role) (*model.Rental, error)
	UpdateRental(ctx context.Context, id uuid.UUID, patch RentalPatch, callerID uuid.UUID, callerRole model.Role) (*model.Rental, error)
	DeleteRental(ctx context.Context, id, callerID uuid.UUID, callerRole model.Role) error
	GetUserRentals(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Rental, int64, int, error)
	GetCarRentals(ctx context.Context, carID, callerID uuid.UUID, callerRole model.Role, page, limit int) ([]model.Rental, int64, int, error)
}

type rentalService struct {
	rentalRepo repository.RentalRepository
	carRepo    repository.CarRepository
	userRepo   repository.UserRepository
	cache      *cache.Client
}

// NewRentalService builds a RentalService.
func NewRentalService(
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
		userRepo:   userRepo,
		cache:      cache,
	}
}

// rentalDays converts a date span to a whole number of billable days,
// rounding partial days up.
func rentalDays(startDate, endDate time.Time) int64 {
	return int64(math.Ceil(endDate.Sub(startDate).Hours() / 24))
}

// CreateRental books an available car for the caller. The rental starts out
// pending and the car is marked as held by the renter. The rental insert and
// the car update are two independent writes; a failure in between leaves the
// rental without the car-side hold.
func (s *rentalService) CreateRental(ctx context.Context, carID uuid.UUID, startDate, endDate time.Time, callerID uuid.UUID) (*model.Rental, error) {
	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}

	if !car.Available() {
		return nil, errors.ErrCarUnavailable
	}

	renter, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find renter: %w", err)
	}

	if renter.ID == car.OwnerID {
		return nil, errors.ErrOwnCarRental
	}

	if !startDate.Before(endDate) {
		return nil, errors.ErrInvalidDateRange
	}

	days := rentalDays(startDate, endDate)
	totalPrice := car.Price.Mul(decimal.NewFromInt(days))

	rental := &model.Rental{
		CarID:      car.ID,
		RenterID:   renter.ID,
		OwnerID:    car.OwnerID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalPrice: totalPrice,
		Status:     model.RentalStatusPending,
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, fmt.Errorf("create rental: %w", err)
	}

	car.RenterID = &renter.ID
	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("hold car: %w", err)
	}
	_ = s.cache.Delete(ctx, carCacheKey(car.ID))

	return rental, nil
}

// GetRental returns a rental to its renter or to staff.
func (s *rentalService) GetRental(ctx context.Context, id, callerID uuid.UUID, callerRole model.Role) (*model.Rental, error) {
	rental, err := s.rentalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRentalNotFound
		}
		return nil, fmt.Errorf("find rental: %w", err)
	}

	if rental.RenterID != callerID && !callerRole.IsStaff() {
		return nil, errors.ErrPermissionDenied
	}

	return rental, nil
}

// UpdateRental applies a status transition and/or a total price change under
// the lifecycle rules:
//
//	renter: may only cancel, and only while the rental is pending
//	owner:  may transition freely until the rental is cancelled or completed
//	plain users who are neither renter nor owner are rejected
//
// A transition into completed or cancelled releases the car. The total price
// is frozen once the rental leaves pending.
func (s *rentalService) UpdateRental(ctx context.Context, id uuid.UUID, patch RentalPatch, callerID uuid.UUID, callerRole model.Role) (*model.Rental, error) {
	rental, err := s.rentalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRentalNotFound
		}
		return nil, fmt.Errorf("find rental: %w", err)
	}

	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find caller: %w", err)
	}

	if callerRole == model.RoleUser && caller.ID != rental.RenterID && caller.ID != rental.OwnerID {
		return nil, errors.ErrPermissionDenied
	}

	car, err := s.carRepo.FindByID(ctx, rental.CarID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}

	// Reject a locked price before any car-side writes happen.
	if patch.TotalPrice != nil && rental.Status != model.RentalStatusPending {
		return nil, errors.ErrPriceLocked
	}

	if patch.Status != nil {
		newStatus := *patch.Status
		if !newStatus.Valid() {
			return nil, errors.ErrInvalidStatus
		}

		switch {
		case caller.ID == rental.RenterID:
			if newStatus != model.RentalStatusCancelled {
				return nil, errors.ErrPermissionDenied
			}
			if rental.Status == model.RentalStatusActive || rental.Status == model.RentalStatusCompleted {
				return nil, errors.ErrRentalNotCancellable
			}
		case caller.ID == rental.OwnerID:
			if rental.Status.Terminal() {
				return nil, errors.ErrRentalClosed
			}
		}

		if newStatus.Terminal() {
			car.RenterID = nil
			if err := s.carRepo.Update(ctx, car); err != nil {
				return nil, fmt.Errorf("release car: %w", err)
			}
			_ = s.cache.Delete(ctx, carCacheKey(car.ID))
		}
	}

	// Absent fields mean "no change".
	if patch.Status != nil {
		rental.Status = *patch.Status
	}
	if patch.TotalPrice != nil {
		rental.TotalPrice = *patch.TotalPrice
	}

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, fmt.Errorf("update rental: %w", err)
	}

	return rental, nil
}

// DeleteRental removes a rental record and releases the car.
func (s *rentalService) DeleteRental(ctx context.Context, id, callerID uuid.UUID, callerRole model.Role) error {
	rental, err := s.rentalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrRentalNotFound
		}
		return fmt.Errorf("find rental: %w", err)
	}

	if rental.RenterID != callerID && rental.OwnerID != callerID && !callerRole.IsStaff() {
		return errors.ErrPermissionDenied
	}

	car, err := s.carRepo.FindByID(ctx, rental.CarID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCarNotFound
		}
		return fmt.Errorf("find car: %w", err)
	}

	car.RenterID = nil
	if err := s.carRepo.Update(ctx, car); err != nil {
		return fmt.Errorf("release car: %w", err)
	}
	_ = s.cache.Delete(ctx, carCacheKey(car.ID))

	if _, err := s.rentalRepo.Delete(ctx, rental.ID); err != nil {
		return fmt.Errorf("delete rental: %w", err)
	}
	return nil
}

// GetUserRentals lists the rentals where the given user is the renter.
func (s *rentalService) GetUserRentals(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Rental, int64, int, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, 0, errors.ErrUserNotFound
		}
		return nil, 0, 0, fmt.Errorf("find user: %w", err)
	}

	_, limit, offset := normalizePage(page, limit)
	rentals, total, err := s.rentalRepo.ListByRenter(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list rentals: %w", err)
	}
	return rentals, total, pageCount(total, limit), nil
}

// GetCarRentals lists a car's rental history for its owner or staff.
func (s *rentalService) GetCarRentals(ctx context.Context, carID, callerID uuid.UUID, callerRole model.Role, page, limit int) ([]model.Rental, int64, int, error) {
	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, 0, errors.ErrCarNotFound
		}
		return nil, 0, 0, fmt.Errorf("find car: %w", err)
	}

	if car.OwnerID != callerID && !callerRole.IsStaff() {
		return nil, 0, 0, errors.ErrPermissionDenied
	}

	_, limit, offset := normalizePage(page, limit)
	rentals, total, err := s.rentalRepo.ListByCar(ctx, carID, offset, limit)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list rentals: %w", err)
	}
	return rentals, total, pageCount(total, limit), nil
}
