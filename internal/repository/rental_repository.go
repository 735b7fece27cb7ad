package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carmarket/internal/model"
)

// RentalRepository defines rental persistence operations.
type RentalRepository interface {
	Create(ctx context.Context, rental *model.Rental) error
	Update(ctx context.Context, rental *model.Rental) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, offset, limit int) ([]model.Rental, int64, error)
	ListByCar(ctx context.Context, carID uuid.UUID, offset, limit int) ([]model.Rental, int64, error)
	ListActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]model.Rental, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository builds a GORM-backed repository.
func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rental *model.Rental) error {
	return r.db.WithContext(ctx).Create(rental).Error
}

func (r *rentalRepository) Update(ctx context.Context, rental *model.Rental) error {
	return r.db.WithContext(ctx).Save(rental).Error
}

// FindByID loads a rental with its car and renter references resolved.
func (r *rentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	var rental model.Rental
	if err := r.db.WithContext(ctx).Preload("Car").Preload("Renter").
		Where("id = ?", id).First(&rental).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

// ListByRenter returns one page of a user's rentals plus the unpaged total.
func (r *rentalRepository) ListByRenter(ctx context.Context, renterID uuid.UUID, offset, limit int) ([]model.Rental, int64, error) {
	return r.listWhere(ctx, "renter_id = ?", renterID, offset, limit)
}

// ListByCar returns one page of a car's rental history plus the unpaged total.
func (r *rentalRepository) ListByCar(ctx context.Context, carID uuid.UUID, offset, limit int) ([]model.Rental, int64, error) {
	return r.listWhere(ctx, "car_id = ?", carID, offset, limit)
}

func (r *rentalRepository) listWhere(ctx context.Context, cond string, arg interface{}, offset, limit int) ([]model.Rental, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Rental{}).Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rentals []model.Rental
	if err := r.db.WithContext(ctx).Preload("Car").Where(cond, arg).
		Order("start_date DESC").Offset(offset).Limit(limit).Find(&rentals).Error; err != nil {
		return nil, 0, err
	}
	return rentals, total, nil
}

// ListActiveEndedBefore returns active rentals whose end date has passed,
// candidates for the completion sweep.
func (r *rentalRepository) ListActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]model.Rental, error) {
	var rentals []model.Rental
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", model.RentalStatusActive, cutoff).
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

// Delete removes a rental and reports how many rows were affected.
func (r *rentalRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Rental{})
	return res.RowsAffected, res.Error
}
