package accounts

import "errors"

// Sentinel errors for account lookups
var (
	// ErrAccountNotFound is returned when a lookup finds no matching account
	ErrAccountNotFound = errors.New("account not found")
)
