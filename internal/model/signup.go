package model

import "time"

// Signup lifecycle statuses.  Cancelled signups are retained but excluded
// from a shift's fill count; hard-deleted signups are excluded by no longer
// existing.
const (
	SignupStatusPending   = "pending"
	SignupStatusConfirmed = "confirmed"
	SignupStatusCancelled = "cancelled"
)

// ValidSignupStatus reports whether s is one of the three lifecycle statuses.
// No transition table is enforced beyond set membership: any status may move
// to any other, including re-opening a cancelled signup.
func ValidSignupStatus(s string) bool {
	switch s {
	case SignupStatusPending, SignupStatusConfirmed, SignupStatusCancelled:
		return true
	}
	return false
}

// Signup mirrors the 'signups' table.  One volunteer's registration against a
// shift.  UserID is nullable: anonymous and admin-entered signups carry no
// linked account.
type Signup struct {
	ID        uint64    `json:"id"`         // signups.id
	ShiftID   uint64    `json:"shift_id"`   // signups.shift_id
	Name      string    `json:"name"`       // signups.name
	Email     string    `json:"email"`      // signups.email
	UserID    *uint64   `json:"user_id"`    // signups.user_id, nullable
	Status    string    `json:"status"`     // signups.status
	CreatedAt time.Time `json:"created_at"` // signups.created_at
}
