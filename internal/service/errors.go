package service

import "errors"

// Not-found errors: a referenced entity is absent (or inactive where noted).
var (
	ErrRestaurantNotFound  = errors.New("restaurant not found or inactive")
	ErrTableNotFound       = errors.New("table not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Invalid-request errors: the request is well-formed but violates a business
// rule that the caller can correct.
var (
	ErrOutsideOperatingHours = errors.New("reservation time is outside restaurant operating hours")
	ErrTimeInPast            = errors.New("reservation time must be in the future")
	ErrInvalidPartySize      = errors.New("party size must be at least 1")
	ErrMissingBookingDetails = errors.New("search engine name and booking id are required")
)

// Conflict errors: no table can serve the requested window.
var (
	ErrNoTablesAvailable = errors.New("no tables available for the requested time and party size")
	ErrTableConflict     = errors.New("table is already reserved for this time slot")
)

// Invalid-state errors: the reservation cannot make the requested transition.
var (
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrAlreadyCancelled  = errors.New("reservation is already cancelled")
)
