package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MinCarYear is the oldest model year a listing may carry.
const MinCarYear = 1900

// Car is a rentable listing. RenterID is set only while a pending or active
// rental holds the car.
type Car struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	BrandID   uuid.UUID       `json:"brand_id" gorm:"type:char(36);not null;index"`
	OwnerID   uuid.UUID       `json:"owner_id" gorm:"type:char(36);not null;index"`
	RenterID  *uuid.UUID      `json:"renter_id,omitempty" gorm:"type:char(36);index"`
	Year      int             `json:"year" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"` // per day
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Brand Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Owner User  `json:"-" gorm:"foreignKey:OwnerID"`
}

// Available reports whether the car can take a new rental.
func (c *Car) Available() bool {
	return c.RenterID == nil
}

// BeforeCreate sets UUID before creating the record.
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
