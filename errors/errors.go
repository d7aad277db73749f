package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable kind surfaced to API callers.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeForbidden          ErrorCode = "INSUFFICIENT_PERMISSIONS"
	ErrCodeInvalidRole        ErrorCode = "INVALID_ROLE"
	ErrCodeEmailInUse         ErrorCode = "EMAIL_IN_USE"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// Lookup errors
	ErrCodeRoomNotFound    ErrorCode = "ROOM_NOT_FOUND"
	ErrCodeBookingNotFound ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"

	// Business errors
	ErrCodeRoomNotAvailable ErrorCode = "ROOM_NOT_AVAILABLE_FOR_SPECIFIED_DATES"

	// Validation errors
	ErrCodeInvalidID        ErrorCode = "INVALID_ID_FORMAT"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidRoomType  ErrorCode = "INVALID_ROOM_TYPE"
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"

	// Infrastructure errors
	ErrCodeDatabase ErrorCode = "DATABASE_ERROR"
	ErrCodeInternal ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError carries an ErrorCode plus the internal cause, which is logged but
// never shown to the caller.
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

// NewAppError builds an AppError.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// New builds an AppError without a cause.
func New(code ErrorCode, message string) *AppError {
	return NewAppError(code, message, nil)
}

// Wrap builds an AppError around an internal cause.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return NewAppError(code, message, err)
}

// GetAppError returns the first AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the code carried by err. Anything that is not an AppError is
// an internal fault.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
