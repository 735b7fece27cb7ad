package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carmarket/internal/model"
)

// CarFilter narrows car listings. Zero values mean "no constraint".
type CarFilter struct {
	Name    string
	BrandID uuid.UUID
	OwnerID uuid.UUID
	Year    int
}

// CarRepository defines car persistence operations.
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	Update(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	List(ctx context.Context, filter CarFilter, offset, limit int) ([]model.Car, int64, error)
	CountByBrand(ctx context.Context, brandID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository builds a GORM-backed repository.
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *carRepository) Update(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

// FindByID loads a car with its brand reference resolved.
func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).Preload("Brand").Where("id = ?", id).First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// List returns one page of cars matching the filter plus the unpaged total.
func (r *carRepository) List(ctx context.Context, filter CarFilter, offset, limit int) ([]model.Car, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Car{})
	if filter.Name != "" {
		q = q.Where("name = ?", filter.Name)
	}
	if filter.BrandID != uuid.Nil {
		q = q.Where("brand_id = ?", filter.BrandID)
	}
	if filter.OwnerID != uuid.Nil {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cars []model.Car
	if err := q.Preload("Brand").Offset(offset).Limit(limit).Find(&cars).Error; err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

// CountByBrand reports how many cars reference the given brand.
func (r *carRepository) CountByBrand(ctx context.Context, brandID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).Where("brand_id = ?", brandID).Count(&total).Error
	return total, err
}

// Delete removes a car and reports how many rows were affected.
func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Car{})
	return res.RowsAffected, res.Error
}
