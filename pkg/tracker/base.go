package tracker

import (
	"context"
	"maps"
	"net/url"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// languagePlaceholder is substituted in endpoint URL templates.
const languagePlaceholder = "{language}"

// ResponseBuilder decodes a raw carrier payload into an unsorted Track.
type ResponseBuilder func(parcelNumber, body string) (*Track, error)

// BaseConfig describes the carrier-specific pieces shared by every tracker.
type BaseConfig struct {
	// Carrier is the carrier identifier returned by Name.
	Carrier string
	// EndpointURL is the data endpoint. It may contain a {language} placeholder.
	EndpointURL string
	// TrackingURLs maps a language to the human-facing tracking page.
	TrackingURLs map[string]string
	// DefaultLanguage is used when no language or an unknown one is requested.
	DefaultLanguage string
	// ParcelParam is the query parameter carrying the parcel number.
	ParcelParam string
	// Headers are sent with every fetch.
	Headers map[string]string
}

// Base implements the carrier-independent half of a Tracker. Carriers embed it
// and pass their ResponseBuilder to Run.
//
// A Base is never modified after NewBase, so it is safe for concurrent use.
type Base struct {
	carrier         string
	endpointURL     string
	trackingURLs    map[string]string
	defaultLanguage string
	parcelParam     string
	headers         map[string]string

	provider DataProvider
	logger   *otelzap.Logger
	tracer   trace.Tracer
}

// NewBase creates a Base. A nil logger or tracer is replaced by a no-op one.
func NewBase(cfg BaseConfig, provider DataProvider, logger *otelzap.Logger, tracer trace.Tracer) Base {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	return Base{
		carrier:         cfg.Carrier,
		endpointURL:     cfg.EndpointURL,
		trackingURLs:    maps.Clone(cfg.TrackingURLs),
		defaultLanguage: cfg.DefaultLanguage,
		parcelParam:     cfg.ParcelParam,
		headers:         maps.Clone(cfg.Headers),
		provider:        provider,
		logger:          logger,
		tracer:          tracer,
	}
}

// Name returns the carrier name.
func (b *Base) Name() string {
	return b.carrier
}

// Logger returns the tracker's logger.
func (b *Base) Logger() *otelzap.Logger {
	return b.logger
}

// TrackingURL builds the human-facing tracking URL.
func (b *Base) TrackingURL(parcelNumber, language string, params url.Values) string {
	base := b.trackingURLs[b.language(language)]
	return b.withQuery(base, parcelNumber, params)
}

// EndpointURL builds the data endpoint URL.
func (b *Base) EndpointURL(parcelNumber, language string, params url.Values) string {
	base := strings.ReplaceAll(b.endpointURL, languagePlaceholder, b.language(language))
	return b.withQuery(base, parcelNumber, params)
}

// Run executes the fetch, decode and sort pipeline for one parcel.
func (b *Base) Run(ctx context.Context, parcelNumber, language string, params url.Values, build ResponseBuilder) (*Track, error) {
	ctx, span := b.tracer.Start(ctx, b.carrier+".Track",
		trace.WithAttributes(
			attribute.String("carrier", b.carrier),
			attribute.String("parcel_number", parcelNumber),
		),
	)
	defer span.End()

	endpoint := b.EndpointURL(parcelNumber, language, params)

	body, err := b.Fetch(ctx, parcelNumber, endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	track, err := build(parcelNumber, body)
	if err != nil {
		b.logger.Ctx(ctx).Warn("Tracking response rejected",
			zap.String("carrier", b.carrier),
			zap.String("parcel_number", parcelNumber),
			zap.String("kind", Kind(err)),
			zap.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("events", track.Len()))
	return track.SortEvents(), nil
}

// Fetch retrieves the raw payload through the DataProvider. Transport failures
// are logged and replaced by a FetchError naming the parcel.
func (b *Base) Fetch(ctx context.Context, parcelNumber, endpoint string) (string, error) {
	b.logger.Ctx(ctx).Debug("Fetching tracking data",
		zap.String("carrier", b.carrier),
		zap.String("parcel_number", parcelNumber),
		zap.String("url", endpoint),
	)

	body, err := b.provider.Fetch(ctx, endpoint, b.requestOptions())
	if err != nil {
		b.logger.Ctx(ctx).Error("Carrier fetch failed",
			zap.String("carrier", b.carrier),
			zap.String("parcel_number", parcelNumber),
			zap.Error(err),
		)
		return "", NewFetchError(b.carrier, parcelNumber)
	}
	return body, nil
}

func (b *Base) requestOptions() RequestOptions {
	return RequestOptions{Headers: maps.Clone(b.headers)}
}

func (b *Base) language(language string) string {
	if language == "" {
		return b.defaultLanguage
	}
	if _, ok := b.trackingURLs[language]; !ok {
		return b.defaultLanguage
	}
	return language
}

// withQuery appends the query string. A non-empty params replaces the default
// {parcelParam: parcelNumber} set instead of being merged into it.
func (b *Base) withQuery(base, parcelNumber string, params url.Values) string {
	query := params
	if len(query) == 0 {
		query = url.Values{b.parcelParam: {parcelNumber}}
	}
	return base + "?" + query.Encode()
}
