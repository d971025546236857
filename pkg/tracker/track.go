package tracker

import (
	"encoding/json"
	"maps"
	"slices"
)

// Track is the normalized history of one shipment.
//
// A Track is built by a carrier parser, finished with SortEvents and then handed
// to the caller, who must treat it as read-only.
type Track struct {
	events            []Event
	recipient         *string
	additionalDetails map[string]any
}

// NewTrack creates an empty Track.
func NewTrack() *Track {
	return &Track{additionalDetails: make(map[string]any)}
}

// AddEvent appends an event. Order is not guaranteed until SortEvents is called.
func (t *Track) AddEvent(e Event) {
	t.events = append(t.events, e)
}

// SortEvents sorts the events ascending by timestamp, keeping the insertion
// order of events with equal timestamps.
func (t *Track) SortEvents() *Track {
	slices.SortStableFunc(t.events, func(a, b Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return t
}

// SetRecipient records who received the shipment. A later call overwrites.
func (t *Track) SetRecipient(name string) {
	t.recipient = &name
}

// Recipient returns the recipient and whether one was recorded.
func (t *Track) Recipient() (string, bool) {
	if t.recipient == nil {
		return "", false
	}
	return *t.recipient, true
}

// AddAdditionalDetails stores a shipment-level detail, replacing any previous value for key.
func (t *Track) AddAdditionalDetails(key string, value any) {
	if t.additionalDetails == nil {
		t.additionalDetails = make(map[string]any)
	}
	t.additionalDetails[key] = value
}

// AdditionalDetails returns a copy of the shipment-level details.
func (t *Track) AdditionalDetails() map[string]any {
	return maps.Clone(t.additionalDetails)
}

// Events returns a copy of the events in their current order.
func (t *Track) Events() []Event {
	return slices.Clone(t.events)
}

// Len returns the number of events.
func (t *Track) Len() int {
	return len(t.events)
}

// LatestEvent returns the last event in the current order.
func (t *Track) LatestEvent() (Event, bool) {
	if len(t.events) == 0 {
		return Event{}, false
	}
	return t.events[len(t.events)-1], true
}

// Status returns the status of the last event, or StatusUnknown for an empty track.
func (t *Track) Status() Status {
	e, ok := t.LatestEvent()
	if !ok {
		return StatusUnknown
	}
	return e.Status
}

type trackJSON struct {
	Status            Status         `json:"status"`
	Recipient         *string        `json:"recipient,omitempty"`
	AdditionalDetails map[string]any `json:"additionalDetails,omitempty"`
	Events            []Event        `json:"events"`
}

// MarshalJSON implements json.Marshaler.
func (t *Track) MarshalJSON() ([]byte, error) {
	events := t.events
	if events == nil {
		events = []Event{}
	}
	return json.Marshal(trackJSON{
		Status:            t.Status(),
		Recipient:         t.recipient,
		AdditionalDetails: t.additionalDetails,
		Events:            events,
	})
}
