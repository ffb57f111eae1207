package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists   ErrorCode = "USER_EXISTS"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Booking / availability errors
	ErrCodeInvalidDateRange      ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeDoubleBooking         ErrorCode = "DOUBLE_BOOKING"
	ErrCodeDatesBlocked          ErrorCode = "DATES_BLOCKED"
	ErrCodeOverlappingBlock      ErrorCode = "OVERLAPPING_BLOCK"
	ErrCodeActiveBookingConflict ErrorCode = "ACTIVE_BOOKING_CONFLICT"
	ErrCodeNoPrimaryGuest        ErrorCode = "NO_PRIMARY_GUEST"
	ErrCodeMultiplePrimaryGuests ErrorCode = "MULTIPLE_PRIMARY_GUESTS"
	ErrCodeInvalidSplitDate      ErrorCode = "INVALID_SPLIT_DATE"
	ErrCodePropertyNotFound      ErrorCode = "PROPERTY_NOT_FOUND"
	ErrCodeBookingNotFound       ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeBlockNotFound         ErrorCode = "BLOCK_NOT_FOUND"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError is the application error type carried from services and
// validators up to the HTTP layer.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is (or wraps) an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnauthorized      = errors.New("unauthorized")

	ErrBookingNotFound  = errors.New("booking not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrBlockNotFound    = errors.New("blocked period not found")

	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)
