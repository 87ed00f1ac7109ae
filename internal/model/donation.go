package model

import "time"

// Donation statuses.  A donation starts pending when a checkout session is
// created and becomes paid when the provider confirms the reference.
const (
	DonationStatusPending = "pending"
	DonationStatusPaid    = "paid"
)

// Donation mirrors the 'donations' table.  Reference is the opaque checkout
// session reference issued by the payment provider and is what the confirm
// callback keys on.
type Donation struct {
	ID          uint64     `json:"id"`           // donations.id
	DonorName   string     `json:"donor_name"`   // donations.donor_name
	Email       string     `json:"email"`        // donations.email
	AmountCents uint32     `json:"amount_cents"` // donations.amount_cents
	Status      string     `json:"status"`       // donations.status
	Reference   string     `json:"reference"`    // donations.reference, unique
	PaidAt      *time.Time `json:"paid_at"`      // donations.paid_at, nullable
	CreatedAt   time.Time  `json:"created_at"`   // donations.created_at
}
