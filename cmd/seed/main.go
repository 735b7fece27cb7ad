package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carmarket/internal/config"
	"carmarket/internal/db"
	"carmarket/internal/model"
	"carmarket/internal/repository"
)

type seedUser struct {
	Email    string
	Password string
	Role     model.Role
}

type seedCar struct {
	Name       string
	Brand      string
	OwnerEmail string
	Year       int
	Price      string
}

var seedUsers = []seedUser{
	{Email: "superadmin@carmarket.local", Password: "superadmin123", Role: model.RoleSuperadmin},
	{Email: "admin@carmarket.local", Password: "admin12345", Role: model.RoleAdmin},
	{Email: "alice@example.com", Password: "password123", Role: model.RoleUser},
	{Email: "bob@example.com", Password: "password123", Role: model.RoleUser},
}

var seedBrands = []model.Brand{
	{Name: "Volvo", Country: "Sweden"},
	{Name: "Toyota", Country: "Japan"},
	{Name: "Renault", Country: "France"},
}

var seedCars = []seedCar{
	{Name: "XC90", Brand: "Volvo", OwnerEmail: "alice@example.com", Year: 2022, Price: "50"},
	{Name: "Corolla", Brand: "Toyota", OwnerEmail: "alice@example.com", Year: 2020, Price: "35"},
	{Name: "Clio", Brand: "Renault", OwnerEmail: "bob@example.com", Year: 2019, Price: "25"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Brand{}, &model.Car{}, &model.Rental{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	brandRepo := repository.NewBrandRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)

	users := map[string]*model.User{}
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.Email)
		if err == nil {
			users[su.Email] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up user %s: %v", su.Email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{Email: su.Email, PasswordHash: string(hashed), Role: su.Role}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		users[su.Email] = user
		log.Printf("Created user %s (%s)", su.Email, su.Role)
	}

	brands := map[string]*model.Brand{}
	for i := range seedBrands {
		sb := seedBrands[i]
		existing, err := brandRepo.FindByName(ctx, sb.Name)
		if err == nil {
			brands[sb.Name] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up brand %s: %v", sb.Name, err)
		}

		if err := brandRepo.Create(ctx, &sb); err != nil {
			log.Fatalf("Failed to create brand %s: %v", sb.Name, err)
		}
		brands[sb.Name] = &sb
		log.Printf("Created brand %s", sb.Name)
	}

	created := 0
	for _, sc := range seedCars {
		brand := brands[sc.Brand]
		owner := users[sc.OwnerEmail]
		if brand == nil || owner == nil {
			log.Fatalf("Seed car %s references unknown brand or owner", sc.Name)
		}

		existing, _, err := carRepo.List(ctx, repository.CarFilter{Name: sc.Name, BrandID: brand.ID}, 0, 1)
		if err != nil {
			log.Fatalf("Failed to look up car %s: %v", sc.Name, err)
		}
		if len(existing) > 0 {
			continue
		}

		price, err := decimal.NewFromString(sc.Price)
		if err != nil {
			log.Fatalf("Invalid seed price %q: %v", sc.Price, err)
		}
		car := &model.Car{
			Name:    sc.Name,
			BrandID: brand.ID,
			OwnerID: owner.ID,
			Year:    sc.Year,
			Price:   price,
		}
		if err := carRepo.Create(ctx, car); err != nil {
			log.Fatalf("Failed to create car %s: %v", sc.Name, err)
		}
		created++
		log.Printf("Created car %s (%s)", sc.Name, sc.Brand)
	}

	log.Printf("Seed completed: %d users, %d brands, %d new cars", len(users), len(brands), created)
}
