package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrInvalidID        = errors.New("invalid ID format")
	ErrUnknownPlatform  = errors.New("unknown platform")
	ErrUnknownStatus    = errors.New("unknown pick status")
	ErrUnknownTolerance = errors.New("unknown risk tolerance")
)
