package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"carmarket/internal/cache"
	"carmarket/internal/model"
	"carmarket/internal/repository"
)

// RentalSweeper closes out active rentals whose end date has passed, so cars
// do not stay held forever when nobody completes the booking explicitly.
type RentalSweeper struct {
	rentalRepo repository.RentalRepository
	carRepo    repository.CarRepository
	cache      *cache.Client
	now        func() time.Time
}

// NewRentalSweeper builds a RentalSweeper.
func NewRentalSweeper(rentalRepo repository.RentalRepository, carRepo repository.CarRepository, cache *cache.Client) *RentalSweeper {
	return &RentalSweeper{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
		cache:      cache,
		now:        time.Now,
	}
}

// SweepExpired marks overdue active rentals as completed and releases their
// cars. It keeps going past individual failures and returns how many rentals
// were closed.
func (s *RentalSweeper) SweepExpired(ctx context.Context) (int, error) {
	overdue, err := s.rentalRepo.ListActiveEndedBefore(ctx, s.now())
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range overdue {
		rental := &overdue[i]
		rental.Status = model.RentalStatusCompleted
		if err := s.rentalRepo.Update(ctx, rental); err != nil {
			log.Printf("rental sweep: complete rental %s: %v", rental.ID, err)
			continue
		}

		car, err := s.carRepo.FindByID(ctx, rental.CarID)
		if err != nil {
			// Car gone: nothing left to release.
			if err != gorm.ErrRecordNotFound {
				log.Printf("rental sweep: find car %s: %v", rental.CarID, err)
			}
			swept++
			continue
		}
		if car.RenterID != nil && *car.RenterID == rental.RenterID {
			car.RenterID = nil
			if err := s.carRepo.Update(ctx, car); err != nil {
				log.Printf("rental sweep: release car %s: %v", car.ID, err)
				continue
			}
			_ = s.cache.Delete(ctx, carCacheKey(car.ID))
		}
		swept++
	}
	return swept, nil
}
