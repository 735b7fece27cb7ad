package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand groups cars by manufacturer. A brand cannot be deleted while any car
// still references it.
type Brand struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Country   string         `json:"country" gorm:"size:255;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Cars []Car `json:"cars,omitempty" gorm:"foreignKey:BrandID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
