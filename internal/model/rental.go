package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RentalStatus represents where a rental is in its lifecycle.
type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusActive, RentalStatusCompleted, RentalStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

// Rental is a time-bounded booking of a car. OwnerID is copied from the car's
// owner at creation and does not follow later ownership changes.
type Rental struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	CarID      uuid.UUID       `json:"car_id" gorm:"type:char(36);not null;index"`
	RenterID   uuid.UUID       `json:"renter_id" gorm:"type:char(36);not null;index"`
	OwnerID    uuid.UUID       `json:"owner_id" gorm:"type:char(36);not null;index"`
	StartDate  time.Time       `json:"start_date" gorm:"not null"`
	EndDate    time.Time       `json:"end_date" gorm:"not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(20,2);not null"`
	Status     RentalStatus    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Car    Car  `json:"car,omitempty" gorm:"foreignKey:CarID"`
	Renter User `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
	Owner  User `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Rental) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
