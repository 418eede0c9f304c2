package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a caller is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidStateTransition is returned when a cashout request is moved
	// through an illegal state transition.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrInsufficientBalance is returned when a debit would drive a company
	// balance below zero.
	ErrInsufficientBalance = errors.New("insufficient available balance")
	// ErrBelowMinimumCashout is returned when a cashout request is smaller than
	// the configured minimum.
	ErrBelowMinimumCashout = errors.New("amount is below the minimum cashout amount")
	// ErrExceedsAmountOwed is returned when an owner payout or expense would
	// drive the owner's owed amount below zero.
	ErrExceedsAmountOwed = errors.New("amount exceeds amount owed to owner")
	// ErrMissingFeeConfiguration is returned when no commission rate can be
	// resolved for a payment. The payment stays unreconciled.
	ErrMissingFeeConfiguration = errors.New("no commission rate configured")
	// ErrCompanyBalanceNotFound is returned when a company has no balance row.
	ErrCompanyBalanceNotFound = errors.New("company balance not found")
	// ErrOwnerBalanceNotFound is returned when a property owner has no balance row.
	ErrOwnerBalanceNotFound = errors.New("owner balance not found")
	// ErrConcurrentModification is returned by the persistence layer when a
	// balance row was modified concurrently. Services retry a bounded number of
	// times before surfacing it.
	ErrConcurrentModification = errors.New("concurrent modification")
)
