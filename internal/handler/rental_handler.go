package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"carmarket/internal/errors"
	"carmarket/internal/model"
	"carmarket/internal/presenter"
	"carmarket/internal/service"
)

// RentalHandler handles rental lifecycle endpoints.
type RentalHandler struct {
	rentalService service.RentalService
}

// NewRentalHandler creates a new rental handler.
func NewRentalHandler(rentalService service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// RentalCreateRequest represents a rental creation payload.
type RentalCreateRequest struct {
	CarID     string    `json:"car_id" validate:"required,uuid"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// RentalPatchRequest represents a rental status/price update payload. Absent
// fields are left unchanged.
type RentalPatchRequest struct {
	Status     *string `json:"status" validate:"omitempty,oneof=pending active completed cancelled"`
	TotalPrice *string `json:"total_price"`
}

// CreateRental godoc
// @Summary Rent a car
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RentalCreateRequest true "Rental data"
// @Success 201 {object} presenter.RentalView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rentals [post]
func (h *RentalHandler) CreateRental(c echo.Context) error {
	callerID, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req RentalCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid car_id",
			Code:  "INVALID_UUID",
		})
	}

	rental, err := h.rentalService.CreateRental(c.Request().Context(), carID, req.StartDate, req.EndDate, callerID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, presenter.Rental(rental, callerRole))
}

// GetRental godoc
// @Summary Get rental by id
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} presenter.RentalView
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rentals/{id} [get]
func (h *RentalHandler) GetRental(c echo.Context) error {
	callerID, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	rental, err := h.rentalService.GetRental(c.Request().Context(), id, callerID, callerRole)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Rental(rental, callerRole))
}

// UpdateRentalStatus godoc
// @Summary Update a rental's status or pending price
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body RentalPatchRequest true "Fields to update"
// @Success 200 {object} presenter.RentalView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rentals/{id}/status [patch]
func (h *RentalHandler) UpdateRentalStatus(c echo.Context) error {
	callerID, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req RentalPatchRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	patch := service.RentalPatch{}
	if req.Status != nil {
		status := model.RentalStatus(*req.Status)
		patch.Status = &status
	}
	if req.TotalPrice != nil {
		price, err := decimal.NewFromString(*req.TotalPrice)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid total_price",
				Code:  "INVALID_PRICE",
			})
		}
		patch.TotalPrice = &price
	}

	rental, err := h.rentalService.UpdateRental(c.Request().Context(), id, patch, callerID, callerRole)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Rental(rental, callerRole))
}

// DeleteRental godoc
// @Summary Delete a rental
// @Tags rentals
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rentals/{id} [delete]
func (h *RentalHandler) DeleteRental(c echo.Context) error {
	callerID, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.rentalService.DeleteRental(c.Request().Context(), id, callerID, callerRole); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MyRentals godoc
// @Summary List the caller's rentals
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} presenter.Page
// @Failure 404 {object} errors.ErrorResponse
// @Router /rentals/user [get]
func (h *RentalHandler) MyRentals(c echo.Context) error {
	callerID, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c)

	rentals, total, pages, err := h.rentalService.GetUserRentals(c.Request().Context(), callerID, page, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Page{
		Items: presenter.Rentals(rentals, callerRole),
		Total: total,
		Pages: pages,
	})
}

// CarRentals godoc
// @Summary List a car's rental history
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} presenter.Page
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id}/rentals [get]
func (h *RentalHandler) CarRentals(c echo.Context) error {
	callerID, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	carID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	page, limit := pageParams(c)

	rentals, total, pages, err := h.rentalService.GetCarRentals(c.Request().Context(), carID, callerID, callerRole, page, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Page{
		Items: presenter.Rentals(rentals, callerRole),
		Total: total,
		Pages: pages,
	})
}
