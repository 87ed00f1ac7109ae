package model

import "time"

// Event mirrors the 'events' table.  Events are both calendar entries for the
// public site and the parents of volunteer shifts.  VolunteerActive controls
// visibility in the volunteer portal independently of IsPublished, so an
// event can be announced before signups open (or stay listed after they
// close).
type Event struct {
	ID              uint64    `json:"id"`              // events.id
	Title           string    `json:"title"`           // events.title
	Date            time.Time `json:"date"`            // events.date
	Location        string    `json:"location"`        // events.location
	Description     string    `json:"description"`     // events.description
	IsPublished     bool      `json:"is_published"`    // events.is_published
	VolunteerActive bool      `json:"volunteer_active"` // events.volunteer_active
	CreatedAt       time.Time `json:"created_at"`      // events.created_at
	UpdatedAt       time.Time `json:"updated_at"`      // events.updated_at
}
