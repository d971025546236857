package mock

import (
	"context"
	"net/url"
	"time"

	"github.com/tournevent/parceltrack/pkg/tracker"
)

// Tracker is a mock carrier returning a fixed three-event timeline.
type Tracker struct {
	name string

	// Errors maps parcel numbers to the error Track should return for them.
	Errors map[string]error
}

// New creates a new mock tracker.
func New(name string) *Tracker {
	return &Tracker{name: name}
}

// Name returns the carrier name.
func (t *Tracker) Name() string {
	return t.name
}

// TrackingURL returns a mock tracking URL.
func (t *Tracker) TrackingURL(parcelNumber, language string, params url.Values) string {
	query := params
	if len(query) == 0 {
		query = url.Values{"q": {parcelNumber}}
	}
	return "https://track." + t.name + ".mock/" + language + "?" + query.Encode()
}

// Track returns a mock timeline ending in a delivery.
func (t *Tracker) Track(ctx context.Context, parcelNumber, language string, params url.Values) (*tracker.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, tracker.NewFetchError(t.name, parcelNumber)
	}
	if err, ok := t.Errors[parcelNumber]; ok {
		return nil, err
	}

	start := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)
	track := tracker.NewTrack()
	track.AddEvent(tracker.NewEvent(tracker.StatusDelivered, "Oslo, Norway", "Delivered", start.Add(48*time.Hour), nil))
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "Hamburg, Germany", "Parcel accepted", start, nil))
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "Oslo, Norway", "Out for delivery", start.Add(40*time.Hour), nil))
	track.SetRecipient("MOCK")

	return track.SortEvents(), nil
}

var _ tracker.Tracker = (*Tracker)(nil)
