// Package payment abstracts the donation checkout provider.  The hosted
// deployment talks to an external checkout service; the interface keeps its
// surface to the two calls the donation flow actually makes.
package payment

import "context"

// Session is a checkout session handed back to the client.  Reference is the
// opaque identifier the confirm callback later presents; URL is where the
// client is redirected to pay.
type Session struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
}

// Provider creates checkout sessions for donations.
type Provider interface {
	// CreateSession opens a checkout session for the given amount.
	CreateSession(ctx context.Context, amountCents uint32, donorEmail string) (Session, error)
}
