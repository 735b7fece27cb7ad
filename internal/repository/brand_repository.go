package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carmarket/internal/model"
)

// BrandRepository defines brand persistence operations.
type BrandRepository interface {
	Create(ctx context.Context, brand *model.Brand) error
	Update(ctx context.Context, brand *model.Brand) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	FindByName(ctx context.Context, name string) (*model.Brand, error)
	List(ctx context.Context, offset, limit int) ([]model.Brand, int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository builds a GORM-backed repository.
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *brandRepository) Update(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *brandRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// FindByName does a case-sensitive exact match, used for uniqueness checks.
func (r *brandRepository) FindByName(ctx context.Context, name string) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).Where("BINARY name = ?", name).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// List returns one page of brands plus the unpaged total.
func (r *brandRepository) List(ctx context.Context, offset, limit int) ([]model.Brand, int64, error) {
	var brands []model.Brand
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Brand{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&brands).Error; err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// Delete removes a brand and reports how many rows were affected.
func (r *brandRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Brand{})
	return res.RowsAffected, res.Error
}
