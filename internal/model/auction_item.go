package model

import "time"

// AuctionItem mirrors the 'auction_items' table.  Silent-auction catalog
// entries.  Bidding itself happens on paper at the event; the site only
// advertises items and their minimum bids.
type AuctionItem struct {
	ID          uint64    `json:"id"`           // auction_items.id
	Title       string    `json:"title"`        // auction_items.title
	Description string    `json:"description"`  // auction_items.description
	DonatedBy   string    `json:"donated_by"`   // auction_items.donated_by (optional)
	MinBidCents uint32    `json:"min_bid_cents"` // auction_items.min_bid_cents
	ImageURL    string    `json:"image_url"`    // auction_items.image_url (optional)
	IsActive    bool      `json:"is_active"`    // auction_items.is_active
	CreatedAt   time.Time `json:"created_at"`   // auction_items.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // auction_items.updated_at
}
