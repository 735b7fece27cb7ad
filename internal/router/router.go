package router

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"carmarket/docs"
	"carmarket/internal/auth"
	"carmarket/internal/config"
	"carmarket/internal/errors"
	"carmarket/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	brandHandler *handler.BrandHandler,
	carHandler *handler.CarHandler,
	rentalHandler *handler.RentalHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require a JWT that has not been blacklisted)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if claims.ID != "" {
				blacklisted, err := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if err != nil {
					return nil, err
				}
				if blacklisted {
					return nil, fmt.Errorf("token revoked")
				}
			}
			return claims, nil
		},
	}))

	secured.GET("/me", userHandler.Me)

	// User routes
	secured.GET("/users", userHandler.ListUsers)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)

	// Brand routes (mutations are staff-only)
	secured.GET("/brands", brandHandler.ListBrands)
	secured.GET("/brands/:id", brandHandler.GetBrand)
	secured.POST("/brands", brandHandler.CreateBrand, requireStaff)
	secured.PUT("/brands/:id", brandHandler.ReplaceBrand, requireStaff)
	secured.PATCH("/brands/:id", brandHandler.PatchBrand, requireStaff)
	secured.DELETE("/brands/:id", brandHandler.DeleteBrand, requireStaff)

	// Car routes
	secured.GET("/cars", carHandler.ListCars)
	secured.GET("/cars/:id", carHandler.GetCar)
	secured.POST("/cars", carHandler.CreateCar)
	secured.PUT("/cars/:id", carHandler.ReplaceCar)
	secured.PATCH("/cars/:id", carHandler.PatchCar)
	secured.DELETE("/cars/:id", carHandler.DeleteCar)
	secured.GET("/cars/:id/rentals", rentalHandler.CarRentals)

	// Rental routes
	secured.POST("/rentals", rentalHandler.CreateRental)
	secured.GET("/rentals/user", rentalHandler.MyRentals)
	secured.GET("/rentals/:id", rentalHandler.GetRental)
	secured.PATCH("/rentals/:id/status", rentalHandler.UpdateRentalStatus)
	secured.DELETE("/rentals/:id", rentalHandler.DeleteRental)
}

// requireStaff rejects callers without an admin-level role.
func requireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok || !claims.Role.IsStaff() {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "permission denied",
				Code:  "PERMISSION_DENIED",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
