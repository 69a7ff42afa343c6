package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
)

// Form errors
var (
	ErrProfileNotFound     = errors.New("investor profile not found")
	ErrStepOutOfRange      = errors.New("step out of range")
	ErrStepValidation      = errors.New("step validation failed")
	ErrListFloorReached    = errors.New("list is at its minimum row count")
	ErrListIndexOutOfRange = errors.New("list index out of range")
	ErrAlreadySubmitted    = errors.New("profile already submitted")
)
