package main

import (
	"context"
	"errors"

	"github.com/tournevent/parceltrack/internal/config"
	"github.com/tournevent/parceltrack/internal/telemetry"
	"github.com/tournevent/parceltrack/pkg/tracker"
	"github.com/tournevent/parceltrack/pkg/tracker/bring"
	"github.com/tournevent/parceltrack/pkg/tracker/gls"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(opts telemetry.LoggerOptions) (*otelzap.Logger, error) {
	return telemetry.NewLogger(opts)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return otel.Tracer(cfg.ServiceName), func(context.Context) error { return nil }, nil
	}

	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Attributes()...)
}

// errNoCarriers is returned when configuration disables every carrier.
var errNoCarriers = errors.New("no carriers enabled, set BRING_ENABLED or GLS_ENABLED")

func initTrackerRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) (*tracker.Registry, error) {
	registry := tracker.NewRegistry()

	// Register enabled carriers
	if cfg.BringEnabled {
		registry.Register(bring.New(bring.Config{
			BaseURL:   cfg.BringBaseURL,
			Language:  cfg.BringLanguage,
			APIUID:    cfg.BringAPIUID,
			APIKey:    cfg.BringAPIKey,
			ClientURL: cfg.BringClientURL,
			Timeout:   cfg.HTTPTimeout,
			UseMock:   cfg.UseMock,
		}, logger, tracer))
	}

	if cfg.GLSEnabled {
		loc, err := cfg.GLSLocation()
		if err != nil {
			logger.Warn("Falling back to UTC for GLS timestamps", zap.Error(err))
		}
		registry.Register(gls.New(gls.Config{
			EndpointURL:        cfg.GLSEndpointURL,
			TrackingURLGerman:  cfg.GLSTrackingURLGerman,
			TrackingURLEnglish: cfg.GLSTrackingURLEnglish,
			Language:           cfg.GLSLanguage,
			Location:           loc,
			Timeout:            cfg.HTTPTimeout,
			UseMock:            cfg.UseMock,
		}, logger, tracer))
	}

	if registry.Count() == 0 {
		return nil, errNoCarriers
	}
	return registry, nil
}
