package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrBrandNotFound is returned when a brand does not resolve.
	ErrBrandNotFound = errors.New("brand not found")
	// ErrCarNotFound is returned when a car does not resolve.
	ErrCarNotFound = errors.New("car not found")
	// ErrRentalNotFound is returned when a rental does not resolve.
	ErrRentalNotFound = errors.New("rental not found")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already in use")
	// ErrBrandNameTaken is returned on a brand name uniqueness violation.
	ErrBrandNameTaken = errors.New("brand already exists")
	// ErrBrandHasCars is returned when deleting a brand that still owns cars.
	ErrBrandHasCars = errors.New("cannot delete brand with associated cars")
	// ErrCarUnavailable is returned when the car already has a renter.
	ErrCarUnavailable = errors.New("this car is not available for rent")
	// ErrOwnCarRental is returned when a user tries to rent their own car.
	ErrOwnCarRental = errors.New("you cannot rent your own car")
	// ErrRentalNotCancellable is returned when a renter cancels a rental that
	// is already active or completed.
	ErrRentalNotCancellable = errors.New("this rental is already active or completed and cannot be cancelled")
	// ErrRentalClosed is returned when transitioning a rental that is already
	// cancelled or completed.
	ErrRentalClosed = errors.New("this rental is already cancelled or completed")
	// ErrPriceLocked is returned when changing the total price of a rental
	// that is no longer pending.
	ErrPriceLocked = errors.New("total price can only change while the rental is pending")

	// ErrInvalidDateRange is returned when the end date is not after the start date.
	ErrInvalidDateRange = errors.New("end date must be after start date")
	// ErrInvalidYear is returned when a car year is out of range.
	ErrInvalidYear = errors.New("invalid car year")
	// ErrInvalidPrice is returned when a price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrInvalidRole is returned when a role value is unknown or may not be
	// assigned by the caller.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidStatus is returned when a rental status value is unknown.
	ErrInvalidStatus = errors.New("invalid rental status")

	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPermissionDenied is returned when the caller lacks the privileges
	// for the target operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNothingDeleted is returned when a delete unexpectedly removed no rows.
	ErrNothingDeleted = errors.New("delete removed no records")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrBrandNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BRAND_NOT_FOUND")
	case errors.Is(err, ErrCarNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CAR_NOT_FOUND")
	case errors.Is(err, ErrRentalNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RENTAL_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		// The register endpoint reports a duplicate email as a plain 400.
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrBrandNameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "BRAND_EXISTS")
	case errors.Is(err, ErrBrandHasCars):
		return NewHTTPError(http.StatusConflict, err.Error(), "BRAND_HAS_CARS")
	case errors.Is(err, ErrCarUnavailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "CAR_UNAVAILABLE")
	case errors.Is(err, ErrOwnCarRental):
		return NewHTTPError(http.StatusForbidden, err.Error(), "OWN_CAR_RENTAL")
	case errors.Is(err, ErrRentalNotCancellable):
		return NewHTTPError(http.StatusConflict, err.Error(), "RENTAL_NOT_CANCELLABLE")
	case errors.Is(err, ErrRentalClosed):
		return NewHTTPError(http.StatusConflict, err.Error(), "RENTAL_CLOSED")
	case errors.Is(err, ErrPriceLocked):
		return NewHTTPError(http.StatusConflict, err.Error(), "PRICE_LOCKED")
	case errors.Is(err, ErrInvalidDateRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE_RANGE")
	case errors.Is(err, ErrInvalidYear):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_YEAR")
	case errors.Is(err, ErrInvalidPrice):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMISSION_DENIED")
	case errors.Is(err, ErrNothingDeleted):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "DELETE_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
