package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tournevent/parceltrack/internal/config"
	"github.com/tournevent/parceltrack/internal/server"
	"github.com/tournevent/parceltrack/internal/telemetry"
	"github.com/tournevent/parceltrack/pkg/tracker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	_ "time/tzdata"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "parceltrack",
	Short:   "Parcel tracking across Bring and GLS",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var trackCmd = &cobra.Command{
	Use:   "track <carrier> <parcel>...",
	Short: "Print the tracking timeline of one or more parcels as JSON",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTrack,
}

var urlCmd = &cobra.Command{
	Use:   "url <carrier> <parcel>",
	Short: "Print the public tracking page URL of a parcel",
	Args:  cobra.ExactArgs(2),
	RunE:  runURL,
}

var (
	flagLang   string
	flagParams []string
)

func init() {
	trackCmd.Flags().StringVar(&flagLang, "lang", "", "two-letter language code")
	urlCmd.Flags().StringVar(&flagLang, "lang", "", "two-letter language code")
	urlCmd.Flags().StringArrayVar(&flagParams, "param", nil, "query parameter key=value replacing the defaults (repeatable)")

	rootCmd.AddCommand(serveCmd, trackCmd, urlCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(telemetry.LoggerOptions{Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(context.Background())
	}

	registry, err := initTrackerRegistry(cfg, logger, tracer)
	if err != nil {
		return err
	}

	logger.Info("Starting parceltrack",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Strings("carriers", registry.Names()),
	)

	srv := server.New(server.Config{Port: cfg.Port}, registry, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

type trackOutput struct {
	ParcelNumber string         `json:"parcelNumber"`
	Track        *tracker.Track `json:"track,omitempty"`
	Error        string         `json:"error,omitempty"`
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, logger, err := cliSetup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry, err := initTrackerRegistry(cfg, logger, nil)
	if err != nil {
		return err
	}
	results, err := registry.TrackMany(cmd.Context(), args[0], args[1:], flagLang, cfg.TrackConcurrency)
	if err != nil {
		return err
	}

	out := make([]trackOutput, 0, len(results))
	failed := 0
	for _, res := range results {
		o := trackOutput{ParcelNumber: res.ParcelNumber, Track: res.Track}
		if res.Err != nil {
			o.Error = res.Err.Error()
			failed++
		}
		out = append(out, o)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d parcels failed", failed, len(results))
	}
	return nil
}

func runURL(cmd *cobra.Command, args []string) error {
	params, err := parseParams(flagParams)
	if err != nil {
		return err
	}

	cfg, logger, err := cliSetup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry, err := initTrackerRegistry(cfg, logger, nil)
	if err != nil {
		return err
	}
	t, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.TrackingURL(args[1], flagLang, params))
	return nil
}

// cliSetup loads config and a stderr logger so stdout carries only results.
func cliSetup() (*config.Config, *otelzap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := initLogger(telemetry.LoggerOptions{
		Level:      cfg.LogLevel,
		Encoding:   "console",
		OutputPath: "stderr",
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func parseParams(raw []string) (url.Values, error) {
	params := url.Values{}
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, errors.New("invalid --param " + kv + ", expected key=value")
		}
		params.Add(key, value)
	}
	return params, nil
}
