package domain

import "errors"

// Hard planning failures. Callers match them with errors.Is; every layer
// wraps them with its own context.
var (
	// Malformed trip parameters (duration, travelers, hotel tier, mode, budget).
	ErrInvalidRequest = errors.New("invalid request")
	// A required catalog (hotels for the tier, restaurants) is empty.
	ErrInsufficientCatalog = errors.New("insufficient catalog")
	// Neither train nor car offers were supplied.
	ErrNoTransportAvailable = errors.New("no transport available")
)
