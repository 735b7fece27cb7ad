package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"carmarket/internal/cache"
	"carmarket/internal/errors"
	"carmarket/internal/model"
	"carmarket/internal/repository"
)

const carCacheTTL = 5 * time.Minute

// CarCreate carries the fields needed to list a car. A nil OwnerID defaults
// to the caller.
type CarCreate struct {
	Name    string
	BrandID uuid.UUID
	OwnerID uuid.UUID
	Year    int
	Price   decimal.Decimal
}

// CarPatch carries the mutable fields of a car. Nil fields are left untouched.
type CarPatch struct {
	Name    *string
	BrandID *uuid.UUID
	Year    *int
	Price   *decimal.Decimal
}

// CarService manages car listings and their brand association.
type CarService interface {
	CreateCar(ctx context.Context, in CarCreate, callerID uuid.UUID, callerRole model.Role) (*model.Car, error)
	GetCar(ctx context.Context, id uuid.UUID) (*model.Car, error)
	ListCars(ctx context.Context, filter repository.CarFilter, page, limit int) ([]model.Car, int64, int, error)
	UpdateCar(ctx context.Context, id uuid.UUID, patch CarPatch, callerRole model.Role) (*model.Car, error)
	DeleteCar(ctx context.Context, id uuid.UUID, callerRole model.Role) error
}

type carService struct {
	carRepo   repository.CarRepository
	brandRepo repository.BrandRepository
	userRepo  repository.UserRepository
	cache     *cache.Client
}

// NewCarService builds a CarService.
func NewCarService(
	carRepo repository.CarRepository,
	brandRepo repository.BrandRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) CarService {
	return &carService{
		carRepo:   carRepo,
		brandRepo: brandRepo,
		userRepo:  userRepo,
		cache:     cache,
	}
}

func carCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("car:%s", id)
}

func validateCarYear(year int) error {
	if year < model.MinCarYear || year > time.Now().Year()+1 {
		return errors.ErrInvalidYear
	}
	return nil
}

// CreateCar lists a car under an existing brand. Staff only.
func (s *carService) CreateCar(ctx context.Context, in CarCreate, callerID uuid.UUID, callerRole model.Role) (*model.Car, error) {
	if !callerRole.IsStaff() {
		return nil, errors.ErrPermissionDenied
	}

	if err := validateCarYear(in.Year); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, errors.ErrInvalidPrice
	}

	if _, err := s.brandRepo.FindByID(ctx, in.BrandID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBrandNotFound
		}
		return nil, fmt.Errorf("find brand: %w", err)
	}

	ownerID := in.OwnerID
	if ownerID == uuid.Nil {
		ownerID = callerID
	}
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	car := &model.Car{
		Name:    in.Name,
		BrandID: in.BrandID,
		OwnerID: ownerID,
		Year:    in.Year,
		Price:   in.Price,
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	return car, nil
}

// GetCar returns a car with its brand resolved; reads go through the cache.
func (s *carService) GetCar(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	if data, _ := s.cache.Get(ctx, carCacheKey(id)); data != nil {
		var cached model.Car
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}

	if payload, err := json.Marshal(car); err == nil {
		_ = s.cache.Set(ctx, carCacheKey(id), payload, carCacheTTL)
	}
	return car, nil
}

// ListCars returns one page of cars matching the filter.
func (s *carService) ListCars(ctx context.Context, filter repository.CarFilter, page, limit int) ([]model.Car, int64, int, error) {
	_, limit, offset := normalizePage(page, limit)
	cars, total, err := s.carRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list cars: %w", err)
	}
	return cars, total, pageCount(total, limit), nil
}

// UpdateCar patches a car. Staff only. When the patch moves the car to a
// different brand, the new brand must resolve; rewriting the brand reference
// is what removes the car from the old brand's list and adds it to the new
// one.
func (s *carService) UpdateCar(ctx context.Context, id uuid.UUID, patch CarPatch, callerRole model.Role) (*model.Car, error) {
	if !callerRole.IsStaff() {
		return nil, errors.ErrPermissionDenied
	}

	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}

	if patch.BrandID != nil && *patch.BrandID != car.BrandID {
		newBrand, err := s.brandRepo.FindByID(ctx, *patch.BrandID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrBrandNotFound
			}
			return nil, fmt.Errorf("find brand: %w", err)
		}
		car.BrandID = newBrand.ID
		car.Brand = *newBrand
	}

	if patch.Year != nil {
		if err := validateCarYear(*patch.Year); err != nil {
			return nil, err
		}
		car.Year = *patch.Year
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, errors.ErrInvalidPrice
		}
		car.Price = *patch.Price
	}
	if patch.Name != nil {
		car.Name = *patch.Name
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("update car: %w", err)
	}
	_ = s.cache.Delete(ctx, carCacheKey(car.ID))

	return car, nil
}

// DeleteCar removes a car listing. Staff only.
func (s *carService) DeleteCar(ctx context.Context, id uuid.UUID, callerRole model.Role) error {
	if !callerRole.IsStaff() {
		return errors.ErrPermissionDenied
	}

	if _, err := s.carRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCarNotFound
		}
		return fmt.Errorf("find car: %w", err)
	}

	rows, err := s.carRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	if rows == 0 {
		return errors.ErrNothingDeleted
	}
	_ = s.cache.Delete(ctx, carCacheKey(id))

	return nil
}
