package tracker

import (
	"maps"
	"time"
)

// Status represents the normalized status of a tracking event.
type Status string

const (
	StatusUnknown   Status = "UNKNOWN"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusPickup    Status = "PICKUP"
	StatusException Status = "EXCEPTION"
)

// Statuses returns every canonical status.
func Statuses() []Status {
	return []Status{StatusUnknown, StatusInTransit, StatusDelivered, StatusPickup, StatusException}
}

// Valid reports whether s is one of the canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnknown, StatusInTransit, StatusDelivered, StatusPickup, StatusException:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Event is a single normalized occurrence in a shipment's life.
// Events are values; nothing in this package mutates one after NewEvent returns it.
type Event struct {
	Status            Status         `json:"status"`
	Location          string         `json:"location"`
	Description       string         `json:"description"`
	Timestamp         time.Time      `json:"timestamp"`
	AdditionalDetails map[string]any `json:"additionalDetails,omitempty"`
}

// NewEvent creates an Event. The details map is copied.
func NewEvent(status Status, location, description string, ts time.Time, details map[string]any) Event {
	return Event{
		Status:            status,
		Location:          location,
		Description:       description,
		Timestamp:         ts,
		AdditionalDetails: maps.Clone(details),
	}
}

// Detail returns a single additional detail.
func (e Event) Detail(key string) (any, bool) {
	v, ok := e.AdditionalDetails[key]
	return v, ok
}
