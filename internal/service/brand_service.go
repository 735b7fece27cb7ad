package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carmarket/internal/errors"
	"carmarket/internal/model"
	"carmarket/internal/repository"
)

// BrandPatch carries the mutable fields of a brand. Nil fields are left
// untouched.
type BrandPatch struct {
	Name    *string
	Country *string
}

// BrandService manages car brands.
type BrandService interface {
	CreateBrand(ctx context.Context, name, country string) (*model.Brand, error)
	GetBrand(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	ListBrands(ctx context.Context, page, limit int) ([]model.Brand, int64, int, error)
	UpdateBrand(ctx context.Context, id uuid.UUID, patch BrandPatch) (*model.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error
}

type brandService struct {
	brandRepo repository.BrandRepository
	carRepo   repository.CarRepository
}

// NewBrandService builds a BrandService.
func NewBrandService(brandRepo repository.BrandRepository, carRepo repository.CarRepository) BrandService {
	return &brandService{brandRepo: brandRepo, carRepo: carRepo}
}

// CreateBrand creates a brand with a unique name.
func (s *brandService) CreateBrand(ctx context.Context, name, country string) (*model.Brand, error) {
	existing, err := s.brandRepo.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, errors.ErrBrandNameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check brand name: %w", err)
	}

	brand := &model.Brand{Name: name, Country: country}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}
	return brand, nil
}

func (s *brandService) GetBrand(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBrandNotFound
		}
		return nil, fmt.Errorf("find brand: %w", err)
	}
	return brand, nil
}

// ListBrands returns one page of brands.
func (s *brandService) ListBrands(ctx context.Context, page, limit int) ([]model.Brand, int64, int, error) {
	_, limit, offset := normalizePage(page, limit)
	brands, total, err := s.brandRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list brands: %w", err)
	}
	return brands, total, pageCount(total, limit), nil
}

// UpdateBrand patches a brand. A name change re-checks uniqueness against
// every other brand.
func (s *brandService) UpdateBrand(ctx context.Context, id uuid.UUID, patch BrandPatch) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBrandNotFound
		}
		return nil, fmt.Errorf("find brand: %w", err)
	}

	if patch.Name != nil && *patch.Name != brand.Name {
		existing, err := s.brandRepo.FindByName(ctx, *patch.Name)
		if err == nil && existing != nil && existing.ID != brand.ID {
			return nil, errors.ErrBrandNameTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check brand name: %w", err)
		}
		brand.Name = *patch.Name
	}
	if patch.Country != nil {
		brand.Country = *patch.Country
	}

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("update brand: %w", err)
	}
	return brand, nil
}

// DeleteBrand removes a brand, refusing while any car still references it.
func (s *brandService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBrandNotFound
		}
		return fmt.Errorf("find brand: %w", err)
	}

	carCount, err := s.carRepo.CountByBrand(ctx, brand.ID)
	if err != nil {
		return fmt.Errorf("count brand cars: %w", err)
	}
	if carCount > 0 {
		return errors.ErrBrandHasCars
	}

	rows, err := s.brandRepo.Delete(ctx, brand.ID)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if rows == 0 {
		return errors.ErrNothingDeleted
	}
	return nil
}
