// Package tracker provides a carrier-agnostic abstraction over shipment tracking endpoints.
//
// Each carrier lives in its own sub-package and normalises its payload into a Track:
// a chronologically sorted list of Events whose statuses come from a closed enum.
package tracker

import (
	"context"
	"net/url"
)

// Tracker defines the interface that all tracking carriers must implement.
type Tracker interface {
	// Name returns the carrier identifier (e.g., "bring", "gls").
	Name() string

	// TrackingURL builds the human-facing tracking page URL for a parcel.
	// A non-empty params replaces the carrier's default query parameters.
	TrackingURL(parcelNumber, language string, params url.Values) string

	// Track fetches the carrier payload for a parcel and returns the sorted timeline.
	Track(ctx context.Context, parcelNumber, language string, params url.Values) (*Track, error)
}
