package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"carmarket/internal/errors"
	"carmarket/internal/model"
)

func TestCreateBrand(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a brand with a free name", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		svc := NewBrandService(brandRepo, new(MockCarRepository))

		brandRepo.On("FindByName", ctx, "Volvo").Return(nil, gorm.ErrRecordNotFound)
		brandRepo.On("Create", ctx, mock.AnythingOfType("*model.Brand")).Return(nil)

		brand, err := svc.CreateBrand(ctx, "Volvo", "Sweden")

		assert.NoError(t, err)
		assert.Equal(t, "Volvo", brand.Name)
		assert.Equal(t, "Sweden", brand.Country)
		brandRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		svc := NewBrandService(brandRepo, new(MockCarRepository))

		brandRepo.On("FindByName", ctx, "Volvo").Return(&model.Brand{ID: uuid.New(), Name: "Volvo"}, nil)

		_, err := svc.CreateBrand(ctx, "Volvo", "Sweden")
		assert.ErrorIs(t, err, errors.ErrBrandNameTaken)
		brandRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateBrand(t *testing.T) {
	ctx := context.Background()
	brand := &model.Brand{ID: uuid.New(), Name: "Volvo", Country: "Sweden"}

	t.Run("renames when the new name is free", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		svc := NewBrandService(brandRepo, new(MockCarRepository))

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		brandRepo.On("FindByName", ctx, "Polestar").Return(nil, gorm.ErrRecordNotFound)
		brandRepo.On("Update", ctx, mock.AnythingOfType("*model.Brand")).Return(nil)

		name := "Polestar"
		got, err := svc.UpdateBrand(ctx, brand.ID, BrandPatch{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, "Polestar", got.Name)
	})

	t.Run("rejects a name held by another brand", func(t *testing.T) {
		own := &model.Brand{ID: uuid.New(), Name: "Volvo", Country: "Sweden"}
		brandRepo := new(MockBrandRepository)
		svc := NewBrandService(brandRepo, new(MockCarRepository))

		brandRepo.On("FindByID", ctx, own.ID).Return(own, nil)
		brandRepo.On("FindByName", ctx, "Toyota").Return(&model.Brand{ID: uuid.New(), Name: "Toyota"}, nil)

		name := "Toyota"
		_, err := svc.UpdateBrand(ctx, own.ID, BrandPatch{Name: &name})
		assert.ErrorIs(t, err, errors.ErrBrandNameTaken)
	})

	t.Run("country only patch skips the name check", func(t *testing.T) {
		own := &model.Brand{ID: uuid.New(), Name: "Volvo", Country: "Sweden"}
		brandRepo := new(MockBrandRepository)
		svc := NewBrandService(brandRepo, new(MockCarRepository))

		brandRepo.On("FindByID", ctx, own.ID).Return(own, nil)
		brandRepo.On("Update", ctx, mock.AnythingOfType("*model.Brand")).Return(nil)

		country := "Norway"
		got, err := svc.UpdateBrand(ctx, own.ID, BrandPatch{Country: &country})

		assert.NoError(t, err)
		assert.Equal(t, "Norway", got.Country)
		brandRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		svc := NewBrandService(brandRepo, new(MockCarRepository))

		id := uuid.New()
		brandRepo.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

		name := "Polestar"
		_, err := svc.UpdateBrand(ctx, id, BrandPatch{Name: &name})
		assert.ErrorIs(t, err, errors.ErrBrandNotFound)
	})
}

func TestDeleteBrand(t *testing.T) {
	ctx := context.Background()
	brand := &model.Brand{ID: uuid.New(), Name: "Volvo"}

	t.Run("deletes a brand without cars", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		carRepo := new(MockCarRepository)
		svc := NewBrandService(brandRepo, carRepo)

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		carRepo.On("CountByBrand", ctx, brand.ID).Return(int64(0), nil)
		brandRepo.On("Delete", ctx, brand.ID).Return(int64(1), nil)

		assert.NoError(t, svc.DeleteBrand(ctx, brand.ID))
		brandRepo.AssertExpectations(t)
	})

	t.Run("refuses while cars still reference the brand", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		carRepo := new(MockCarRepository)
		svc := NewBrandService(brandRepo, carRepo)

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		carRepo.On("CountByBrand", ctx, brand.ID).Return(int64(3), nil)

		err := svc.DeleteBrand(ctx, brand.ID)
		assert.ErrorIs(t, err, errors.ErrBrandHasCars)
		brandRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("zero rows affected", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		carRepo := new(MockCarRepository)
		svc := NewBrandService(brandRepo, carRepo)

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		carRepo.On("CountByBrand", ctx, brand.ID).Return(int64(0), nil)
		brandRepo.On("Delete", ctx, brand.ID).Return(int64(0), nil)

		err := svc.DeleteBrand(ctx, brand.ID)
		assert.ErrorIs(t, err, errors.ErrNothingDeleted)
	})

	t.Run("not found", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		svc := NewBrandService(brandRepo, new(MockCarRepository))

		brandRepo.On("FindByID", ctx, brand.ID).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteBrand(ctx, brand.ID)
		assert.ErrorIs(t, err, errors.ErrBrandNotFound)
	})
}

func TestListBrands(t *testing.T) {
	ctx := context.Background()
	brandRepo := new(MockBrandRepository)
	svc := NewBrandService(brandRepo, new(MockCarRepository))

	brandRepo.On("List", ctx, 0, 10).
		Return([]model.Brand{{Name: "Volvo"}, {Name: "Toyota"}}, int64(2), nil)

	brands, total, pages, err := svc.ListBrands(ctx, 0, 0)

	assert.NoError(t, err)
	assert.Len(t, brands, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 1, pages)
}
