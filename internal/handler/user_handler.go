package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carmarket/internal/model"
	"carmarket/internal/presenter"
	"carmarket/internal/service"
)

// UserHandler handles user account endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserPatchRequest represents a user update payload.
type UserPatchRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin superadmin"`
}

// Me godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.UserView
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	callerID, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.Request().Context(), callerID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.User(user, callerRole))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} presenter.UserView
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.User(user, callerRole))
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} presenter.Page
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c)

	users, total, pages, err := h.userService.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.Page{
		Items: presenter.Users(users, callerRole),
		Total: total,
		Pages: pages,
	})
}

// UpdateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UserPatchRequest true "Fields to update"
// @Success 200 {object} presenter.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UserPatchRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	patch := service.UserPatch{
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		patch.Role = &role
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), id, patch, callerRole)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, presenter.User(user, callerRole))
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	_, callerRole, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id, callerRole); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
