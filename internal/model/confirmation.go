package model

import "time"

// Confirmation is one guest's RSVP for an event. FamilyBatchID is set only
// when the row was created as part of a family submission; rows from the
// same request share the same tag.
type Confirmation struct {
	ID            int64     `json:"id"`
	EventID       int64     `json:"event_id"`
	GuestName     string    `json:"guest_name"`
	FamilyBatchID *string   `json:"family_batch_id,omitempty"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}
