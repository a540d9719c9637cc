package domain

import "errors"

// Sentinel errors for the trading core. Services wrap these with context;
// the api layer maps them to status codes with errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrQuoteUnavailable     = errors.New("quote unavailable")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrConcurrencyConflict  = errors.New("concurrent order conflict")
)
