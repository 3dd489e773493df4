package model

import "time"

type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	DateTime    time.Time `json:"date_time"`
	Location    string    `json:"location"`
	FullAddress *string   `json:"full_address"`
	Phone       *string   `json:"phone"`
	MapsLink    *string   `json:"maps_link"`
	Message     *string   `json:"message"`
	LinkCode    string    `json:"link_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventStats is an event row joined with aggregate confirmation data,
// used by the master-admin listing.
type EventStats struct {
	Event
	TotalConfirmations int        `json:"total_confirmations"`
	LastConfirmation   *time.Time `json:"last_confirmation"`
}
