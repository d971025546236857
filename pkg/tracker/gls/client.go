// Package gls provides tracking for GLS shipments.
package gls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/tournevent/parceltrack/pkg/tracker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

const carrierName = "gls"

// Default GLS endpoints.
const (
	DefaultEndpointURL        = "https://gls-group.eu/app/service/open/rest/DE/{language}/rstt001"
	DefaultTrackingURLGerman  = "https://gls-group.eu/DE/de/paketverfolgung"
	DefaultTrackingURLEnglish = "https://gls-group.eu/DE/en/parcel-tracking"
	DefaultLanguage           = "de"
)

// Config holds GLS configuration.
type Config struct {
	EndpointURL        string
	TrackingURLGerman  string
	TrackingURLEnglish string
	Language           string
	// Location is the zone GLS history timestamps are expressed in. Nil means UTC.
	Location *time.Location
	Timeout  time.Duration
	UseMock  bool // When true, answers from a canned payload
}

// Client is the GLS tracker.
type Client struct {
	tracker.Base
	location *time.Location
}

// New creates a new GLS client.
// If cfg.UseMock is true, it answers from a canned payload instead of the network.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var provider tracker.DataProvider

	if cfg.UseMock {
		provider = NewMockDataProvider()
	} else {
		provider = tracker.NewHTTPDataProvider(tracker.HTTPDataProviderConfig{
			Timeout: cfg.Timeout,
		})
	}

	return NewWithDataProvider(cfg, provider, logger, tracer)
}

// NewWithDataProvider creates a new GLS client with a custom DataProvider.
func NewWithDataProvider(cfg Config, provider tracker.DataProvider, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Client{
		Base: tracker.NewBase(tracker.BaseConfig{
			Carrier:     carrierName,
			EndpointURL: orDefault(cfg.EndpointURL, DefaultEndpointURL),
			TrackingURLs: map[string]string{
				"de": orDefault(cfg.TrackingURLGerman, DefaultTrackingURLGerman),
				"en": orDefault(cfg.TrackingURLEnglish, DefaultTrackingURLEnglish),
			},
			DefaultLanguage: orDefault(cfg.Language, DefaultLanguage),
			ParcelParam:     "match",
			Headers:         map[string]string{"Accept": "application/json"},
		}, provider, logger, tracer),
		location: loc,
	}
}

// Track fetches and normalizes the GLS timeline for a parcel.
func (c *Client) Track(ctx context.Context, parcelNumber, language string, params url.Values) (*tracker.Track, error) {
	return c.Run(ctx, parcelNumber, language, params, c.buildResponse)
}

// ============================================================================
// Response parsing
// ============================================================================

func (c *Client) buildResponse(parcelNumber, body string) (*tracker.Track, error) {
	var resp TrackingResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, tracker.NewDecodeError(carrierName, parcelNumber, body).WithCause(err)
	}

	if resp.ExceptionText != nil {
		return nil, tracker.NewCarrierError(carrierName, parcelNumber, *resp.ExceptionText)
	}

	if len(resp.TUStatus) == 0 {
		return nil, tracker.NewDecodeError(carrierName, parcelNumber, body).
			WithCause(errors.New("missing tuStatus"))
	}
	status := resp.TUStatus[0]

	if len(status.ProgressBar.EvtNos) < len(status.History) {
		return nil, tracker.NewDecodeError(carrierName, parcelNumber, body).
			WithCause(fmt.Errorf("%d history items but %d event numbers", len(status.History), len(status.ProgressBar.EvtNos)))
	}

	track := tracker.NewTrack()
	for i, item := range status.History {
		eventNumber := status.ProgressBar.EvtNos[i].String()
		resolved := ResolveStatus(eventNumber, status.ProgressBar.StatusInfo)

		ts, err := c.parseDate(item)
		if err != nil {
			return nil, tracker.NewDecodeError(carrierName, parcelNumber, body).WithCause(err)
		}

		track.AddEvent(tracker.NewEvent(
			resolved,
			location(item),
			item.EvtDscr,
			ts,
			map[string]any{"eventNumber": eventNumber},
		))

		switch resolved {
		case tracker.StatusDelivered:
			if recipient, ok := signature(status); ok {
				track.SetRecipient(recipient)
			}
		case tracker.StatusPickup:
			if status.ParcelShop != nil && len(status.ParcelShop.Address) > 0 {
				track.AddAdditionalDetails("parcelShop", status.ParcelShop.Address)
			}
		}
	}

	return track, nil
}

func location(item HistoryItem) string {
	switch {
	case item.Address.City == "":
		return item.Address.CountryName
	case item.Address.CountryName == "":
		return item.Address.City
	default:
		return item.Address.City + ", " + item.Address.CountryName
	}
}

func signature(status TUStatus) (string, bool) {
	if status.Signature == nil || status.Signature.Value == nil || *status.Signature.Value == "" {
		return "", false
	}
	return *status.Signature.Value, true
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseDate joins the separate date and time fields of a history item.
func (c *Client) parseDate(item HistoryItem) (time.Time, error) {
	value := item.Date + " " + item.Time
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, c.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q", value)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var _ tracker.Tracker = (*Client)(nil)
