package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carmarket/internal/presenter"
	"carmarket/internal/service"
)

// BrandHandler handles brand endpoints.
type BrandHandler struct {
	brandService service.BrandService
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(brandService service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// BrandCreateRequest represents a brand creation payload.
type BrandCreateRequest struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// BrandPatchRequest represents a partial brand update payload.
type BrandPatchRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
}

// CreateBrand godoc
// @Summary Create a brand
// @Tags brands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BrandCreateRequest true "Brand data"
// @Success 201 {object} presenter.BrandView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /brands [post]
func (h *BrandHandler) CreateBrand(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req BrandCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	brand, err := h.brandService.CreateBrand(c.Request().Context(), req.Name, req.Country)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, presenter.Brand(brand, callerRole))
}

// GetBrand godoc
// @Summary Get brand by id
// @Tags brands
// @Produce json
// @Security BearerAuth
// @Param id path string true "Brand ID"
// @Success 200 {object} presenter.BrandView
// @Failure 404 {object} errors.ErrorResponse
// @Router /brands/{id} [get]
func (h *BrandHandler) GetBrand(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	brand, err := h.brandService.GetBrand(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Brand(brand, callerRole))
}

// ListBrands godoc
// @Summary List brands
// @Tags brands
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} presenter.Page
// @Router /brands [get]
func (h *BrandHandler) ListBrands(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c)

	brands, total, pages, err := h.brandService.ListBrands(c.Request().Context(), page, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Page{
		Items: presenter.Brands(brands, callerRole),
		Total: total,
		Pages: pages,
	})
}

// ReplaceBrand godoc
// @Summary Replace a brand
// @Tags brands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Brand ID"
// @Param request body BrandCreateRequest true "Brand data"
// @Success 200 {object} presenter.BrandView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /brands/{id} [put]
func (h *BrandHandler) ReplaceBrand(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req BrandCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	brand, err := h.brandService.UpdateBrand(c.Request().Context(), id, service.BrandPatch{
		Name:    &req.Name,
		Country: &req.Country,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Brand(brand, callerRole))
}

// PatchBrand godoc
// @Summary Partially update a brand
// @Tags brands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Brand ID"
// @Param request body BrandPatchRequest true "Fields to update"
// @Success 200 {object} presenter.BrandView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /brands/{id} [patch]
func (h *BrandHandler) PatchBrand(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req BrandPatchRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	brand, err := h.brandService.UpdateBrand(c.Request().Context(), id, service.BrandPatch{
		Name:    req.Name,
		Country: req.Country,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Brand(brand, callerRole))
}

// DeleteBrand godoc
// @Summary Delete a brand
// @Tags brands
// @Security BearerAuth
// @Param id path string true "Brand ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /brands/{id} [delete]
func (h *BrandHandler) DeleteBrand(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.brandService.DeleteBrand(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
