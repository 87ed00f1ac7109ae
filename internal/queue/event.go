package queue

// Actions carried by SignupRecordedEvent.
const (
	SignupActionCreated       = "created"
	SignupActionStatusChanged = "status_changed"
	SignupActionDeleted       = "deleted"
)

// SignupRecordedEvent is published to the signup.recorded queue after every
// signup mutation.  SpotsFilled carries the recount result so downstream
// consumers see the counter the caller saw.  No email is sent on signup; this
// event stream is the only side channel.
type SignupRecordedEvent struct {
	Action      string `json:"action"`
	SignupID    uint64 `json:"signup_id"`
	ShiftID     uint64 `json:"shift_id"`
	Name        string `json:"name,omitempty"`
	Status      string `json:"status,omitempty"`
	SpotsFilled int    `json:"spots_filled"`
	OccurredAt  string `json:"occurred_at"` // RFC3339 UTC
}
