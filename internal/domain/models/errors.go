package models

import "errors"

var (
	ErrDataFormat       = errors.New("data format error")
	ErrInvalidSplit     = errors.New("invalid split")
	ErrFit              = errors.New("model fit error")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrInsufficientData = errors.New("insufficient data")
	ErrCalendarMismatch = errors.New("forecast calendar does not match test dates")
	ErrModelFormat      = errors.New("invalid model blob")
	ErrNotReady         = errors.New("application not initialized")
)
