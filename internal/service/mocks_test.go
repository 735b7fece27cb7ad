package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carmarket/internal/model"
	"carmarket/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	if users, ok := args.Get(0).([]model.User); ok {
		return users, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockBrandRepository is a mock implementation of repository.BrandRepository.
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) Create(ctx context.Context, brand *model.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockBrandRepository) Update(ctx context.Context, brand *model.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	args := m.Called(ctx, id)
	if brand, ok := args.Get(0).(*model.Brand); ok {
		return brand, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBrandRepository) FindByName(ctx context.Context, name string) (*model.Brand, error) {
	args := m.Called(ctx, name)
	if brand, ok := args.Get(0).(*model.Brand); ok {
		return brand, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBrandRepository) List(ctx context.Context, offset, limit int) ([]model.Brand, int64, error) {
	args := m.Called(ctx, offset, limit)
	if brands, ok := args.Get(0).([]model.Brand); ok {
		return brands, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockCarRepository is a mock implementation of repository.CarRepository.
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(ctx context.Context, car *model.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) Update(ctx context.Context, car *model.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	args := m.Called(ctx, id)
	if car, ok := args.Get(0).(*model.Car); ok {
		return car, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarRepository) List(ctx context.Context, filter repository.CarFilter, offset, limit int) ([]model.Car, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if cars, ok := args.Get(0).([]model.Car); ok {
		return cars, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockCarRepository) CountByBrand(ctx context.Context, brandID uuid.UUID) (int64, error) {
	args := m.Called(ctx, brandID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockRentalRepository is a mock implementation of repository.RentalRepository.
type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) Create(ctx context.Context, rental *model.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) Update(ctx context.Context, rental *model.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	args := m.Called(ctx, id)
	if rental, ok := args.Get(0).(*model.Rental); ok {
		return rental, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRentalRepository) ListByRenter(ctx context.Context, renterID uuid.UUID, offset, limit int) ([]model.Rental, int64, error) {
	args := m.Called(ctx, renterID, offset, limit)
	if rentals, ok := args.Get(0).([]model.Rental); ok {
		return rentals, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockRentalRepository) ListByCar(ctx context.Context, carID uuid.UUID, offset, limit int) ([]model.Rental, int64, error) {
	args := m.Called(ctx, carID, offset, limit)
	if rentals, ok := args.Get(0).([]model.Rental); ok {
		return rentals, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockRentalRepository) ListActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]model.Rental, error) {
	args := m.Called(ctx, cutoff)
	if rentals, ok := args.Get(0).([]model.Rental); ok {
		return rentals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRentalRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Get(2).(model.Role), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
