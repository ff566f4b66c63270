package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP statuses; anything else is treated as an internal error.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrOTPExpired   = errors.New("otp expired")
	ErrOTPMismatch  = errors.New("otp mismatch")
)
