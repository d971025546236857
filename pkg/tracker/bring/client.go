// Package bring provides tracking for Bring (Posten Norge) shipments.
package bring

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
	"go.uber.org/zap"
)

const carrierName = "bring"

// DefaultBaseURL is the Bring tracking API endpoint. Bring serves the human
// readable tracking result from the same URL.
const DefaultBaseURL = "https://api.bring.com/tracking/api/v2/tracking.json"

// DefaultLanguage is used when Config.Language is empty.
const DefaultLanguage = "en"

// Config holds Bring configuration.
type Config struct {
	BaseURL   string
	Language  string
	APIUID    string // X-Mybring-API-Uid
	APIKey    string // X-Mybring-API-Key
	ClientURL string // X-Bring-Client-URL, optional
	Timeout   time.Duration
	UseMock   bool // When true, answers from a canned payload
}

// Client is the Bring tracker.
type Client struct {
	tracker.Base
}

// New creates a new Bring client.
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

// NewWithDataProvider creates a new Bring client with a custom DataProvider.
func NewWithDataProvider(cfg Config, provider tracker.DataProvider, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}

	return &Client{
		Base: tracker.NewBase(tracker.BaseConfig{
			Carrier:         carrierName,
			EndpointURL:     baseURL,
			TrackingURLs:    map[string]string{language: baseURL},
			DefaultLanguage: language,
			ParcelParam:     "q",
			Headers:         requestHeaders(cfg),
		}, provider, logger, tracer),
	}
}

// Track fetches and normalizes the Bring timeline for a parcel.
func (c *Client) Track(ctx context.Context, parcelNumber, language string, params url.Values) (*tracker.Track, error) {
	return c.Run(ctx, parcelNumber, language, params, c.buildResponse)
}

func requestHeaders(cfg Config) map[string]string {
	headers := map[string]string{
		"Accept":            "application/json",
		"X-Mybring-API-Uid": cfg.APIUID,
		"X-Mybring-API-Key": cfg.APIKey,
	}
	if cfg.ClientURL != "" {
		headers["X-Bring-Client-URL"] = cfg.ClientURL
	}
	return headers
}

// ============================================================================
// Response parsing
// ============================================================================

func (c *Client) buildResponse(parcelNumber, body string) (*tracker.Track, error) {
	var resp TrackingResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, tracker.NewDecodeError(carrierName, parcelNumber, body).WithCause(err)
	}

	if len(resp.ConsignmentSet) == 0 {
		return nil, tracker.NewDecodeError(carrierName, parcelNumber, body).
			WithCause(errors.New("missing consignmentSet"))
	}
	consignment := resp.ConsignmentSet[0]

	if consignment.Error != nil {
		return nil, tracker.NewCarrierError(carrierName, parcelNumber, consignment.Error.Message)
	}

	if len(consignment.PackageSet) == 0 {
		return nil, tracker.NewDecodeError(carrierName, parcelNumber, body).
			WithCause(errors.New("missing packageSet"))
	}

	track := tracker.NewTrack()
	for _, entry := range consignment.PackageSet[0].EventSet {
		if IsSkipped(entry.Status) {
			c.Logger().Debug("Skipping tracking event",
				zap.String("carrier", carrierName),
				zap.String("parcel_number", parcelNumber),
				zap.String("status_code", entry.Status),
			)
			continue
		}

		ts, err := parseDate(entry.DateIso)
		if err != nil {
			return nil, tracker.NewDecodeError(carrierName, parcelNumber, body).WithCause(err)
		}

		track.AddEvent(tracker.NewEvent(
			ResolveStatus(entry.Status),
			entry.City,
			entry.Description,
			ts,
			map[string]any{"statusCode": entry.Status},
		))
	}

	return track, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// parseDate reads Bring's dateIso field, e.g. "2016-09-15T14:18:00+02:00".
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dateIso %q", s)
}

var _ tracker.Tracker = (*Client)(nil)
