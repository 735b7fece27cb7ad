package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"carmarket/internal/errors"
	"carmarket/internal/model"
	"carmarket/internal/repository"
)

func TestCreateCar(t *testing.T) {
	ctx := context.Background()
	brand := &model.Brand{ID: uuid.New(), Name: "Volvo", Country: "Sweden"}
	owner := &model.User{ID: uuid.New(), Email: "owner@example.com", Role: model.RoleUser}
	admin := &model.User{ID: uuid.New(), Email: "admin@example.com", Role: model.RoleAdmin}

	validInput := func() CarCreate {
		return CarCreate{
			Name:    "XC90",
			BrandID: brand.ID,
			OwnerID: owner.ID,
			Year:    2022,
			Price:   decimal.NewFromInt(50),
		}
	}

	t.Run("staff creates a car", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		brandRepo := new(MockBrandRepository)
		userRepo := new(MockUserRepository)
		svc := NewCarService(carRepo, brandRepo, userRepo, nil)

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
		carRepo.On("Create", ctx, mock.AnythingOfType("*model.Car")).Return(nil)

		car, err := svc.CreateCar(ctx, validInput(), admin.ID, model.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, "XC90", car.Name)
		assert.Equal(t, brand.ID, car.BrandID)
		assert.Equal(t, owner.ID, car.OwnerID)
		carRepo.AssertExpectations(t)
	})

	t.Run("owner defaults to the caller", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		brandRepo := new(MockBrandRepository)
		userRepo := new(MockUserRepository)
		svc := NewCarService(carRepo, brandRepo, userRepo, nil)

		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
		carRepo.On("Create", ctx, mock.AnythingOfType("*model.Car")).Return(nil)

		in := validInput()
		in.OwnerID = uuid.Nil
		car, err := svc.CreateCar(ctx, in, admin.ID, model.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, admin.ID, car.OwnerID)
	})

	t.Run("plain users may not create cars", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

		_, err := svc.CreateCar(ctx, validInput(), owner.ID, model.RoleUser)
		assert.ErrorIs(t, err, errors.ErrPermissionDenied)
		carRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("year out of range", func(t *testing.T) {
		svc := NewCarService(new(MockCarRepository), new(MockBrandRepository), new(MockUserRepository), nil)

		in := validInput()
		in.Year = 1899
		_, err := svc.CreateCar(ctx, in, admin.ID, model.RoleAdmin)
		assert.ErrorIs(t, err, errors.ErrInvalidYear)

		in.Year = time.Now().Year() + 2
		_, err = svc.CreateCar(ctx, in, admin.ID, model.RoleAdmin)
		assert.ErrorIs(t, err, errors.ErrInvalidYear)
	})

	t.Run("negative price", func(t *testing.T) {
		svc := NewCarService(new(MockCarRepository), new(MockBrandRepository), new(MockUserRepository), nil)

		in := validInput()
		in.Price = decimal.NewFromInt(-1)
		_, err := svc.CreateCar(ctx, in, admin.ID, model.RoleAdmin)
		assert.ErrorIs(t, err, errors.ErrInvalidPrice)
	})

	t.Run("unknown brand", func(t *testing.T) {
		brandRepo := new(MockBrandRepository)
		svc := NewCarService(new(MockCarRepository), brandRepo, new(MockUserRepository), nil)

		brandRepo.On("FindByID", ctx, brand.ID).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.CreateCar(ctx, validInput(), admin.ID, model.RoleAdmin)
		assert.ErrorIs(t, err, errors.ErrBrandNotFound)
	})
}

func TestGetCar(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

		car := &model.Car{ID: uuid.New(), Name: "Corolla"}
		carRepo.On("FindByID", ctx, car.ID).Return(car, nil)

		got, err := svc.GetCar(ctx, car.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Corolla", got.Name)
	})

	t.Run("not found", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

		id := uuid.New()
		carRepo.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetCar(ctx, id)
		assert.ErrorIs(t, err, errors.ErrCarNotFound)
	})
}

func TestListCars(t *testing.T) {
	ctx := context.Background()
	carRepo := new(MockCarRepository)
	svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

	filter := repository.CarFilter{Year: 2022}
	carRepo.On("List", ctx, filter, 10, 10).
		Return([]model.Car{{ID: uuid.New()}}, int64(11), nil)

	cars, total, pages, err := svc.ListCars(ctx, filter, 2, 10)

	assert.NoError(t, err)
	assert.Len(t, cars, 1)
	assert.Equal(t, int64(11), total)
	assert.Equal(t, 2, pages)
}

func TestUpdateCar(t *testing.T) {
	ctx := context.Background()

	newFixture := func() (*model.Car, *model.Brand) {
		oldBrand := model.Brand{ID: uuid.New(), Name: "Volvo"}
		car := &model.Car{
			ID:      uuid.New(),
			Name:    "XC90",
			BrandID: oldBrand.ID,
			Brand:   oldBrand,
			OwnerID: uuid.New(),
			Year:    2022,
			Price:   decimal.NewFromInt(50),
		}
		newBrand := &model.Brand{ID: uuid.New(), Name: "Toyota", Country: "Japan"}
		return car, newBrand
	}

	t.Run("moving the car to another brand rewrites the reference", func(t *testing.T) {
		car, newBrand := newFixture()
		carRepo := new(MockCarRepository)
		brandRepo := new(MockBrandRepository)
		svc := NewCarService(carRepo, brandRepo, new(MockUserRepository), nil)

		carRepo.On("FindByID", ctx, car.ID).Return(car, nil)
		brandRepo.On("FindByID", ctx, newBrand.ID).Return(newBrand, nil)
		carRepo.On("Update", ctx, mock.MatchedBy(func(c *model.Car) bool {
			return c.BrandID == newBrand.ID
		})).Return(nil)

		got, err := svc.UpdateCar(ctx, car.ID, CarPatch{BrandID: &newBrand.ID}, model.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, newBrand.ID, got.BrandID)
		assert.Equal(t, "Toyota", got.Brand.Name)
		carRepo.AssertExpectations(t)
	})

	t.Run("target brand must exist", func(t *testing.T) {
		car, newBrand := newFixture()
		carRepo := new(MockCarRepository)
		brandRepo := new(MockBrandRepository)
		svc := NewCarService(carRepo, brandRepo, new(MockUserRepository), nil)

		carRepo.On("FindByID", ctx, car.ID).Return(car, nil)
		brandRepo.On("FindByID", ctx, newBrand.ID).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.UpdateCar(ctx, car.ID, CarPatch{BrandID: &newBrand.ID}, model.RoleAdmin)
		assert.ErrorIs(t, err, errors.ErrBrandNotFound)
		carRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("plain users may not update cars", func(t *testing.T) {
		car, _ := newFixture()
		svc := NewCarService(new(MockCarRepository), new(MockBrandRepository), new(MockUserRepository), nil)

		name := "XC60"
		_, err := svc.UpdateCar(ctx, car.ID, CarPatch{Name: &name}, model.RoleUser)
		assert.ErrorIs(t, err, errors.ErrPermissionDenied)
	})

	t.Run("year validation applies to patches", func(t *testing.T) {
		car, _ := newFixture()
		carRepo := new(MockCarRepository)
		svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

		carRepo.On("FindByID", ctx, car.ID).Return(car, nil)

		year := 1850
		_, err := svc.UpdateCar(ctx, car.ID, CarPatch{Year: &year}, model.RoleAdmin)
		assert.ErrorIs(t, err, errors.ErrInvalidYear)
	})
}

func TestDeleteCar(t *testing.T) {
	ctx := context.Background()
	car := &model.Car{ID: uuid.New(), Name: "Clio"}

	t.Run("staff deletes a car", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

		carRepo.On("FindByID", ctx, car.ID).Return(car, nil)
		carRepo.On("Delete", ctx, car.ID).Return(int64(1), nil)

		assert.NoError(t, svc.DeleteCar(ctx, car.ID, model.RoleAdmin))
		carRepo.AssertExpectations(t)
	})

	t.Run("plain users may not delete cars", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

		err := svc.DeleteCar(ctx, car.ID, model.RoleUser)
		assert.ErrorIs(t, err, errors.ErrPermissionDenied)
		carRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("zero rows affected", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

		carRepo.On("FindByID", ctx, car.ID).Return(car, nil)
		carRepo.On("Delete", ctx, car.ID).Return(int64(0), nil)

		err := svc.DeleteCar(ctx, car.ID, model.RoleAdmin)
		assert.ErrorIs(t, err, errors.ErrNothingDeleted)
	})

	t.Run("not found", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		svc := NewCarService(carRepo, new(MockBrandRepository), new(MockUserRepository), nil)

		carRepo.On("FindByID", ctx, car.ID).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteCar(ctx, car.ID, model.RoleAdmin)
		assert.ErrorIs(t, err, errors.ErrCarNotFound)
	})
}
