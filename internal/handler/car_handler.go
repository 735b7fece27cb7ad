package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"carmarket/internal/errors"
	"carmarket/internal/presenter"
	"carmarket/internal/repository"
	"carmarket/internal/service"
)

// CarHandler handles car listing endpoints.
type CarHandler struct {
	carService service.CarService
}

// NewCarHandler creates a new car handler.
func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// CarCreateRequest represents a car creation payload.
type CarCreateRequest struct {
	Name    string `json:"name" validate:"required"`
	BrandID string `json:"brand_id" validate:"required,uuid"`
	OwnerID string `json:"owner_id" validate:"omitempty,uuid"`
	Year    int    `json:"year" validate:"required"`
	Price   string `json:"price" validate:"required"`
}

// CarPatchRequest represents a partial car update payload.
type CarPatchRequest struct {
	Name    *string `json:"name"`
	BrandID *string `json:"brand_id" validate:"omitempty,uuid"`
	Year    *int    `json:"year"`
	Price   *string `json:"price"`
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price",
			Code:  "INVALID_PRICE",
		})
	}
	return price, nil
}

// CreateCar godoc
// @Summary List a car under a brand
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CarCreateRequest true "Car data"
// @Success 201 {object} presenter.CarView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars [post]
func (h *CarHandler) CreateCar(c echo.Context) error {
	callerID, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req CarCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid brand_id",
			Code:  "INVALID_UUID",
		})
	}
	ownerID := uuid.Nil
	if req.OwnerID != "" {
		if ownerID, err = uuid.Parse(req.OwnerID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid owner_id",
				Code:  "INVALID_UUID",
			})
		}
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return err
	}

	car, err := h.carService.CreateCar(c.Request().Context(), service.CarCreate{
		Name:    req.Name,
		BrandID: brandID,
		OwnerID: ownerID,
		Year:    req.Year,
		Price:   price,
	}, callerID, callerRole)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, presenter.Car(car, callerRole))
}

// GetCar godoc
// @Summary Get car by id
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Success 200 {object} presenter.CarView
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [get]
func (h *CarHandler) GetCar(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	car, err := h.carService.GetCar(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Car(car, callerRole))
}

// ListCars godoc
// @Summary List cars
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param name query string false "Exact name"
// @Param brand query string false "Brand ID"
// @Param year query int false "Model year"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} presenter.Page
// @Router /cars [get]
func (h *CarHandler) ListCars(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c)

	filter := repository.CarFilter{Name: c.QueryParam("name")}
	if raw := c.QueryParam("brand"); raw != "" {
		brandID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid brand",
				Code:  "INVALID_UUID",
			})
		}
		filter.BrandID = brandID
	}
	if raw := c.QueryParam("year"); raw != "" {
		filter.Year, _ = strconv.Atoi(raw)
	}

	cars, total, pages, err := h.carService.ListCars(c.Request().Context(), filter, page, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Page{
		Items: presenter.Cars(cars, callerRole),
		Total: total,
		Pages: pages,
	})
}

// ReplaceCar godoc
// @Summary Replace a car
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param request body CarCreateRequest true "Car data"
// @Success 200 {object} presenter.CarView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [put]
func (h *CarHandler) ReplaceCar(c echo.Context) error {
	var req CarCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}
	return h.applyPatch(c, CarPatchRequest{
		Name:    &req.Name,
		BrandID: &req.BrandID,
		Year:    &req.Year,
		Price:   &req.Price,
	})
}

// PatchCar godoc
// @Summary Partially update a car
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param request body CarPatchRequest true "Fields to update"
// @Success 200 {object} presenter.CarView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [patch]
func (h *CarHandler) PatchCar(c echo.Context) error {
	var req CarPatchRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}
	return h.applyPatch(c, req)
}

func (h *CarHandler) applyPatch(c echo.Context, req CarPatchRequest) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	patch := service.CarPatch{Name: req.Name, Year: req.Year}
	if req.BrandID != nil {
		brandID, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid brand_id",
				Code:  "INVALID_UUID",
			})
		}
		patch.BrandID = &brandID
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return err
		}
		patch.Price = &price
	}

	car, err := h.carService.UpdateCar(c.Request().Context(), id, patch, callerRole)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Car(car, callerRole))
}

// DeleteCar godoc
// @Summary Delete a car
// @Tags cars
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cars/{id} [delete]
func (h *CarHandler) DeleteCar(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.carService.DeleteCar(c.Request().Context(), id, callerRole); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
