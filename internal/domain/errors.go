package domain

import "errors"

var (
	ErrDeviceNotFound        = errors.New("device not found")
	ErrDeviceIndexOutOfRange = errors.New("device index out of range")
	ErrInvalidDeviceID       = errors.New("device id is required")
	ErrInvalidMoveType       = errors.New("invalid move type")
	ErrInvalidCoordinate     = errors.New("invalid coordinate")
	ErrSessionLoad           = errors.New("session load failed")
	ErrNoActiveSession       = errors.New("no active session")
	ErrActionDisabled        = errors.New("action is disabled")
	ErrNoLocation            = errors.New("session has no location")
	ErrTransportUnavailable  = errors.New("device transport unavailable")
)
