package main

import (
	"context"
	"log"
	"net/http"

	_ "carmarket/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"carmarket/internal/auth"
	"carmarket/internal/cache"
	"carmarket/internal/config"
	"carmarket/internal/db"
	"carmarket/internal/handler"
	"carmarket/internal/model"
	"carmarket/internal/repository"
	"carmarket/internal/router"
	"carmarket/internal/service"
)

// @title Car Rental Marketplace API
// @version 1.0
// @description Car rental marketplace with brands, car listings, rentals, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Brand{},
		&model.Car{},
		&model.Rental{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	brandRepo := repository.NewBrandRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)
	rentalRepo := repository.NewRentalRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	brandService := service.NewBrandService(brandRepo, carRepo)
	carService := service.NewCarService(carRepo, brandRepo, userRepo, cacheClient)
	rentalService := service.NewRentalService(rentalRepo, carRepo, userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, jwtService)
	userHandler := handler.NewUserHandler(userService)
	brandHandler := handler.NewBrandHandler(brandService)
	carHandler := handler.NewCarHandler(carService)
	rentalHandler := handler.NewRentalHandler(rentalService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		tokenStore,
		authHandler,
		userHandler,
		brandHandler,
		carHandler,
		rentalHandler,
	)

	// Background sweep closes out overdue active rentals.
	sweeper := service.NewRentalSweeper(rentalRepo, carRepo, cacheClient)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SweepCron, func() {
		if swept, err := sweeper.SweepExpired(context.Background()); err != nil {
			log.Printf("rental sweep: %v", err)
		} else if swept > 0 {
			log.Printf("rental sweep: closed %d overdue rentals", swept)
		}
	}); err != nil {
		log.Fatalf("schedule rental sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
