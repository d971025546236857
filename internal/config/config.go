package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Tracking
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	TrackConcurrency int           `envconfig:"TRACK_CONCURRENCY" default:"4"`
	UseMock          bool          `envconfig:"USE_MOCK" default:"false"`

	// Bring
	BringEnabled   bool   `envconfig:"BRING_ENABLED" default:"true"`
	BringBaseURL   string `envconfig:"BRING_BASE_URL" default:"https://api.bring.com/tracking/api/v2/tracking.json"`
	BringLanguage  string `envconfig:"BRING_LANGUAGE" default:"en"`
	BringAPIUID    string `envconfig:"BRING_API_UID"`
	BringAPIKey    string `envconfig:"BRING_API_KEY"`
	BringClientURL string `envconfig:"BRING_CLIENT_URL"`

	// GLS
	GLSEnabled            bool   `envconfig:"GLS_ENABLED" default:"true"`
	GLSEndpointURL        string `envconfig:"GLS_ENDPOINT_URL" default:"https://gls-group.eu/app/service/open/rest/DE/{language}/rstt001"`
	GLSTrackingURLGerman  string `envconfig:"GLS_TRACKING_URL_DE" default:"https://gls-group.eu/DE/de/paketverfolgung"`
	GLSTrackingURLEnglish string `envconfig:"GLS_TRACKING_URL_EN" default:"https://gls-group.eu/DE/en/parcel-tracking"`
	GLSLanguage           string `envconfig:"GLS_LANGUAGE" default:"de"`
	GLSTimezone           string `envconfig:"GLS_TIMEZONE" default:"Europe/Berlin"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"parceltrack"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first if present; real environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// GLSLocation resolves GLSTimezone, falling back to UTC.
func (c *Config) GLSLocation() (*time.Location, error) {
	if c.GLSTimezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.GLSTimezone)
	if err != nil {
		return time.UTC, fmt.Errorf("loading GLS timezone %q: %w", c.GLSTimezone, err)
	}
	return loc, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("bring.enabled", c.BringEnabled),
		attribute.Bool("gls.enabled", c.GLSEnabled),
		attribute.Bool("mock", c.UseMock),
	}
}
