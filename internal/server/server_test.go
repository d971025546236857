package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/parceltrack/internal/server"
	"github.com/tournevent/parceltrack/pkg/tracker"
	"github.com/tournevent/parceltrack/pkg/tracker/bring"
	"github.com/tournevent/parceltrack/pkg/tracker/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := otelzap.New(zap.NewNop())
	registry := tracker.NewRegistry()

	mockTracker := mock.New("mock")
	mockTracker.Errors = map[string]error{
		"FETCH":   tracker.NewFetchError("mock", "FETCH"),
		"DECODE":  tracker.NewDecodeError("mock", "DECODE", "<html>"),
		"CARRIER": tracker.NewCarrierError("mock", "CARRIER", "No shipment found"),
	}
	registry.Register(mockTracker)
	registry.Register(bring.NewWithDataProvider(bring.Config{}, bring.NewMockDataProvider(), logger, nil))

	return server.New(server.Config{Port: 8080}, registry, logger)
}

func do(t *testing.T, srv *server.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Health(t *testing.T) {
	rec := do(t, newTestServer(t), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(server.RequestIDHeader))
}

func TestServer_RequestIDPropagated(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(server.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(server.RequestIDHeader))
}

func TestServer_Carriers(t *testing.T) {
	rec := do(t, newTestServer(t), "/v1/carriers")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{"bring", "mock"}, body["carriers"])
}

func TestServer_Track(t *testing.T) {
	rec := do(t, newTestServer(t), "/v1/track/mock/ABC123?lang=en")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "DELIVERED", body["status"])
	assert.Equal(t, "MOCK", body["recipient"])
	assert.Len(t, body["events"], 3)
}

func TestServer_Track_Bring(t *testing.T) {
	rec := do(t, newTestServer(t), "/v1/track/bring/70438101015432113")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "DELIVERED", body["status"])
	assert.Len(t, body["events"], 4)
}

func TestServer_Track_ErrorMapping(t *testing.T) {
	tests := []struct {
		parcel string
		status int
		kind   string
	}{
		{"FETCH", http.StatusGatewayTimeout, tracker.KindFetch},
		{"DECODE", http.StatusBadGateway, tracker.KindDecode},
		{"CARRIER", http.StatusUnprocessableEntity, tracker.KindCarrier},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.parcel, func(t *testing.T) {
			rec := do(t, srv, "/v1/track/mock/"+tt.parcel)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.kind, body["kind"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestServer_Track_UnknownCarrier(t *testing.T) {
	rec := do(t, newTestServer(t), "/v1/track/dhl/ABC123")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, tracker.KindNotFound, decodeBody(t, rec)["kind"])
}

func TestServer_Track_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		target string
		msg    string
	}{
		{"bad lang", "/v1/track/mock/ABC123?lang=english", "lang must be exactly 2 characters"},
		{"numeric lang", "/v1/track/mock/ABC123?lang=12", "lang must contain only letters"},
		{"bad parcel", "/v1/track/mock/ABC%2B123", "parcel must contain only letters, digits and dashes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody(t, rec)["error"], tt.msg)
		})
	}
}

func TestServer_TrackingURL(t *testing.T) {
	rec := do(t, newTestServer(t), "/v1/tracking-url/mock/ABC123?lang=de")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "mock", body["carrier"])
	assert.Equal(t, "ABC123", body["parcelNumber"])
	assert.Equal(t, "https://track.mock.mock/de?q=ABC123", body["url"])
}

func TestServer_TrackingURL_ExtraParams(t *testing.T) {
	rec := do(t, newTestServer(t), "/v1/tracking-url/bring/ABC123?lang=en&foo=bar")

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := url.Parse(decodeBody(t, rec)["url"].(string))
	require.NoError(t, err)
	assert.Equal(t, url.Values{"foo": {"bar"}}, got.Query())
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, "/v1/track/mock/ABC123")
	do(t, srv, "/v1/track/mock/CARRIER")

	rec := do(t, srv, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `parceltrack_tracks_total{carrier="mock",outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), `parceltrack_track_errors_total{carrier="mock",kind="carrier"} 1`)
}

func TestServer_NewTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		newTestServer(t)
		newTestServer(t)
	})
}
