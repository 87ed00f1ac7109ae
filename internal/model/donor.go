package model

import "time"

// Donor mirrors the 'donors' table.  Donor and sponsor listings shown on the
// public site.  Level is free text ("gold", "platinum", ...) rendered as a
// section heading; ordering within a level is by name.
type Donor struct {
	ID        uint64    `json:"id"`         // donors.id
	Name      string    `json:"name"`       // donors.name
	Level     string    `json:"level"`      // donors.level
	Website   string    `json:"website"`    // donors.website (optional)
	LogoURL   string    `json:"logo_url"`   // donors.logo_url (optional)
	IsVisible bool      `json:"is_visible"` // donors.is_visible
	CreatedAt time.Time `json:"created_at"` // donors.created_at
	UpdatedAt time.Time `json:"updated_at"` // donors.updated_at
}
