package model

import "time"

// Shift mirrors the 'shifts' table.  A shift is one bookable volunteer slot
// under an event, with a capacity and a cached fill count.
//
// SpotsFilled is denormalized: it should equal the number of signups for this
// shift whose status is not "cancelled", and is maintained by recounting
// after every signup mutation rather than by a storage constraint.  Nothing
// stops it drifting if a recount is skipped, which is why every mutation path
// must go through the recount procedure.
type Shift struct {
	ID             uint64    `json:"id"`              // shifts.id
	EventID        uint64    `json:"event_id"`        // shifts.event_id
	JobTitle       string    `json:"job_title"`       // shifts.job_title
	Description    string    `json:"description"`     // shifts.description (optional)
	StartTime      *string   `json:"start_time"`      // shifts.start_time, "HH:MM" time of day, nullable
	EndTime        *string   `json:"end_time"`        // shifts.end_time, "HH:MM" time of day, nullable
	SpotsAvailable int       `json:"spots_available"` // shifts.spots_available, capacity >= 1
	SpotsFilled    int       `json:"spots_filled"`    // shifts.spots_filled, cached count >= 0
	IsActive       bool      `json:"is_active"`       // shifts.is_active
	CreatedAt      time.Time `json:"created_at"`      // shifts.created_at
	UpdatedAt      time.Time `json:"updated_at"`      // shifts.updated_at
}
