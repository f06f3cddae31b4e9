// pkg/subscription/errors.go
package subscription

import "errors"

var (
	// ErrUnknownCarrier is returned when the MSISDN prefix matches no known carrier
	ErrUnknownCarrier = errors.New("unknown carrier")

	// ErrSessionInvalid is returned when a bearer token resolves to no session
	ErrSessionInvalid = errors.New("session expired or invalid")

	// ErrSessionExpired is returned when the session exists but has expired
	ErrSessionExpired = errors.New("session expired")

	// ErrSubscriberNotFound is returned when an MSISDN has no subscriber record
	ErrSubscriberNotFound = errors.New("subscriber not found")
)
