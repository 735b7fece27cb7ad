// Package presenter projects domain entities into role-dependent view
// records. Each function is a pure transform of (entity, caller role); the
// handlers apply them on every outbound payload so password hashes and
// staff-only fields never leak.
package presenter

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carmarket/internal/model"
)

// UserView is the outbound projection of a user.
type UserView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// BrandView is the outbound projection of a brand.
type BrandView struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
	Cars    []CarView `json:"cars,omitempty"`
}

// CarView is the outbound projection of a car.
type CarView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Brand    *BrandView      `json:"brand,omitempty"`
	Year     int             `json:"year"`
	Price    decimal.Decimal `json:"price"`
	OwnerID  string          `json:"owner_id,omitempty"`
	RenterID string          `json:"renter_id,omitempty"`
}

// RentalView is the outbound projection of a rental.
type RentalView struct {
	ID         string             `json:"id"`
	CarID      string             `json:"car_id"`
	Car        *CarView           `json:"car,omitempty"`
	Renter     *UserView          `json:"renter,omitempty"`
	RenterID   string             `json:"renter_id"`
	OwnerID    string             `json:"owner_id,omitempty"`
	StartDate  time.Time          `json:"start_date"`
	EndDate    time.Time          `json:"end_date"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Status     model.RentalStatus `json:"status"`
}

// Page is the envelope for paginated listings.
type Page struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Pages int         `json:"pages"`
}

// User projects a user for the given caller role. Plain users see a trimmed
// record; staff additionally see the role and creation time.
func User(u *model.User, callerRole model.Role) UserView {
	view := UserView{
		ID:    u.ID.String(),
		Email: u.Email,
	}
	if callerRole.IsStaff() {
		view.Role = u.Role
		created := u.CreatedAt
		view.CreatedAt = &created
	}
	return view
}

// Users projects a slice of users.
func Users(users []model.User, callerRole model.Role) []UserView {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = User(&users[i], callerRole)
	}
	return views
}

// Brand projects a brand. Loaded cars are included; an unloaded car list is
// omitted rather than shown empty.
func Brand(b *model.Brand, callerRole model.Role) BrandView {
	view := BrandView{
		ID:      b.ID.String(),
		Name:    b.Name,
		Country: b.Country,
	}
	if len(b.Cars) > 0 {
		view.Cars = Cars(b.Cars, callerRole)
	}
	return view
}

// Brands projects a slice of brands.
func Brands(brands []model.Brand, callerRole model.Role) []BrandView {
	views := make([]BrandView, len(brands))
	for i := range brands {
		views[i] = Brand(&brands[i], callerRole)
	}
	return views
}

// Car projects a car. Owner and renter references are staff-only.
func Car(c *model.Car, callerRole model.Role) CarView {
	view := CarView{
		ID:    c.ID.String(),
		Name:  c.Name,
		Year:  c.Year,
		Price: c.Price,
	}
	if c.Brand.ID != uuid.Nil {
		brand := Brand(&c.Brand, callerRole)
		brand.Cars = nil // avoid cycles in nested views
		view.Brand = &brand
	}
	if callerRole.IsStaff() {
		view.OwnerID = c.OwnerID.String()
		if c.RenterID != nil {
			view.RenterID = c.RenterID.String()
		}
	}
	return view
}

// Cars projects a slice of cars.
func Cars(cars []model.Car, callerRole model.Role) []CarView {
	views := make([]CarView, len(cars))
	for i := range cars {
		views[i] = Car(&cars[i], callerRole)
	}
	return views
}

// Rental projects a rental with whatever references were loaded.
func Rental(r *model.Rental, callerRole model.Role) RentalView {
	view := RentalView{
		ID:         r.ID.String(),
		CarID:      r.CarID.String(),
		RenterID:   r.RenterID.String(),
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		TotalPrice: r.TotalPrice,
		Status:     r.Status,
	}
	if callerRole.IsStaff() {
		view.OwnerID = r.OwnerID.String()
	}
	if r.Car.ID != uuid.Nil {
		car := Car(&r.Car, callerRole)
		view.Car = &car
	}
	if r.Renter.ID != uuid.Nil {
		renter := User(&r.Renter, callerRole)
		view.Renter = &renter
	}
	return view
}

// Rentals projects a slice of rentals.
func Rentals(rentals []model.Rental, callerRole model.Role) []RentalView {
	views := make([]RentalView, len(rentals))
	for i := range rentals {
		views[i] = Rental(&rentals[i], callerRole)
	}
	return views
}
