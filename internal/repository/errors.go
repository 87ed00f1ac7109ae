// Package repository defines sentinel errors reused across repositories and
// the service layer.  Handlers translate these into fixed HTTP statuses:
// not-found values become 404, state values become 400.
package repository

import "errors"

// Not-found family.  Returned when the referenced row does not exist.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrShiftNotFound       = errors.New("shift not found")
	ErrSignupNotFound      = errors.New("signup not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrDonorNotFound       = errors.New("donor not found")
	ErrAuctionItemNotFound = errors.New("auction item not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrDonationNotFound    = errors.New("donation not found")
)

// State family.  Returned when a record exists but its current state forbids
// the operation.
var (
	// ErrShiftInactive signals a signup attempt against a shift whose
	// is_active flag is off.
	ErrShiftInactive = errors.New("shift is not active")
	// ErrNoSpotsAvailable signals that the admission check found the cached
	// fill count at or above capacity and no overbook override was given.
	ErrNoSpotsAvailable = errors.New("no spots available")
)

// ErrEmailExists is returned on a duplicate registration email.
var ErrEmailExists = errors.New("email already exists")
