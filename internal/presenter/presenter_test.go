package presenter

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"carmarket/internal/model"
)

func TestUserProjection(t *testing.T) {
	user := &model.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "secret-hash",
		Role:         model.RoleAdmin,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("plain callers see a trimmed record", func(t *testing.T) {
		view := User(user, model.RoleUser)
		assert.Equal(t, user.ID.String(), view.ID)
		assert.Equal(t, "alice@example.com", view.Email)
		assert.Empty(t, view.Role)
		assert.Nil(t, view.CreatedAt)
	})

	t.Run("staff see role and creation time", func(t *testing.T) {
		view := User(user, model.RoleSuperadmin)
		assert.Equal(t, model.RoleAdmin, view.Role)
		assert.NotNil(t, view.CreatedAt)
	})
}

func TestCarProjection(t *testing.T) {
	renterID := uuid.New()
	car := &model.Car{
		ID:       uuid.New(),
		Name:     "XC90",
		OwnerID:  uuid.New(),
		RenterID: &renterID,
		Year:     2022,
		Price:    decimal.NewFromInt(50),
		Brand:    model.Brand{ID: uuid.New(), Name: "Volvo", Country: "Sweden"},
	}

	t.Run("owner and renter references are staff only", func(t *testing.T) {
		view := Car(car, model.RoleUser)
		assert.Empty(t, view.OwnerID)
		assert.Empty(t, view.RenterID)

		view = Car(car, model.RoleAdmin)
		assert.Equal(t, car.OwnerID.String(), view.OwnerID)
		assert.Equal(t, renterID.String(), view.RenterID)
	})

	t.Run("loaded brand is nested without its car list", func(t *testing.T) {
		view := Car(car, model.RoleUser)
		assert.NotNil(t, view.Brand)
		assert.Equal(t, "Volvo", view.Brand.Name)
		assert.Nil(t, view.Brand.Cars)
	})

	t.Run("unloaded brand is omitted", func(t *testing.T) {
		bare := &model.Car{ID: uuid.New(), Name: "Clio"}
		view := Car(bare, model.RoleUser)
		assert.Nil(t, view.Brand)
	})
}

func TestRentalProjection(t *testing.T) {
	rental := &model.Rental{
		ID:         uuid.New(),
		CarID:      uuid.New(),
		RenterID:   uuid.New(),
		OwnerID:    uuid.New(),
		TotalPrice: decimal.NewFromInt(150),
		Status:     model.RentalStatusPending,
		Car:        model.Car{ID: uuid.New(), Name: "XC90"},
		Renter:     model.User{ID: uuid.New(), Email: "renter@example.com"},
	}

	t.Run("owner reference is staff only", func(t *testing.T) {
		view := Rental(rental, model.RoleUser)
		assert.Empty(t, view.OwnerID)

		view = Rental(rental, model.RoleAdmin)
		assert.Equal(t, rental.OwnerID.String(), view.OwnerID)
	})

	t.Run("loaded references are nested", func(t *testing.T) {
		view := Rental(rental, model.RoleUser)
		assert.NotNil(t, view.Car)
		assert.Equal(t, "XC90", view.Car.Name)
		assert.NotNil(t, view.Renter)
		assert.Equal(t, "renter@example.com", view.Renter.Email)
	})

	t.Run("unloaded references are omitted", func(t *testing.T) {
		bare := &model.Rental{ID: uuid.New(), CarID: uuid.New(), RenterID: uuid.New()}
		view := Rental(bare, model.RoleUser)
		assert.Nil(t, view.Car)
		assert.Nil(t, view.Renter)
	})
}

func TestBrandProjection(t *testing.T) {
	brand := &model.Brand{
		ID:      uuid.New(),
		Name:    "Volvo",
		Country: "Sweden",
		Cars: []model.Car{
			{ID: uuid.New(), Name: "XC90", Year: 2022},
		},
	}

	view := Brand(brand, model.RoleUser)
	assert.Equal(t, "Volvo", view.Name)
	assert.Len(t, view.Cars, 1)
	assert.Equal(t, "XC90", view.Cars[0].Name)
}
