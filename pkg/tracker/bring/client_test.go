package bring_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/parceltrack/pkg/tracker"
	"github.com/tournevent/parceltrack/pkg/tracker/bring"
	"github.com/tournevent/parceltrack/pkg/tracker/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(provider *mock.DataProvider) *bring.Client {
	logger := otelzap.New(zap.NewNop())
	return bring.NewWithDataProvider(
		bring.Config{APIUID: "uid@example.com", APIKey: "test-key"},
		provider,
		logger,
		nil,
	)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(mock.NewDataProvider(""))
	assert.Equal(t, "bring", client.Name())
}

func TestClient_TrackingURL_Default(t *testing.T) {
	client := newTestClient(mock.NewDataProvider(""))

	assert.Equal(t, bring.DefaultBaseURL+"?q=ABC123", client.TrackingURL("ABC123", "", nil))
	assert.Equal(t, bring.DefaultBaseURL+"?q=ABC123", client.TrackingURL("ABC123", "no", nil))
}

func TestClient_TrackingURL_ExtraParamsReplaceDefault(t *testing.T) {
	client := newTestClient(mock.NewDataProvider(""))

	got := client.TrackingURL("ABC123", "", url.Values{"foo": {"bar"}})
	assert.Equal(t, bring.DefaultBaseURL+"?foo=bar", got)
}

func TestClient_Track_Sample(t *testing.T) {
	provider := bring.NewMockDataProvider()
	client := newTestClient(provider)

	track, err := client.Track(context.Background(), "70438101015432113", "", nil)
	require.NoError(t, err)

	events := track.Events()
	require.Len(t, events, 4, "DELIVERY_CHANGED is skipped")

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp), "events must be sorted")
	}

	assert.Equal(t, tracker.StatusInTransit, events[0].Status)
	assert.Equal(t, "", events[0].Location, "city is optional")
	assert.Equal(t, "Electronic notification received", events[0].Description)
	assert.Equal(t, "LANGHUS", events[1].Location)
	assert.Equal(t, tracker.StatusDelivered, events[3].Status)
	assert.Equal(t, tracker.StatusDelivered, track.Status())

	code, ok := events[3].Detail("statusCode")
	assert.True(t, ok)
	assert.Equal(t, "DELIVERED", code)

	_, ok = track.Recipient()
	assert.False(t, ok)
}

func TestClient_Track_Request(t *testing.T) {
	provider := bring.NewMockDataProvider()
	client := bring.NewWithDataProvider(bring.Config{
		APIUID:    "uid@example.com",
		APIKey:    "test-key",
		ClientURL: "https://shop.example.com",
	}, provider, otelzap.New(zap.NewNop()), nil)

	_, err := client.Track(context.Background(), "ABC123", "", nil)
	require.NoError(t, err)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, bring.DefaultBaseURL+"?q=ABC123", calls[0].URL)
	assert.Equal(t, map[string]string{
		"Accept":             "application/json",
		"X-Mybring-API-Uid":  "uid@example.com",
		"X-Mybring-API-Key":  "test-key",
		"X-Bring-Client-URL": "https://shop.example.com",
	}, calls[0].Headers)
}

func TestClient_Track_UnknownStatusKept(t *testing.T) {
	provider := mock.NewDataProvider(`{"consignmentSet":[{"packageSet":[{"eventSet":[
		{"status":"CUSTOMS","city":"OSLO","description":"Customs clearance","dateIso":"2024-03-04T10:00:00+01:00"},
		{"status":"IN_TRANSIT","city":"OSLO","description":"In transit","dateIso":"2024-03-03T10:00:00+01:00"}
	]}]}]}`)
	client := newTestClient(provider)

	track, err := client.Track(context.Background(), "ABC123", "", nil)
	require.NoError(t, err)

	require.Equal(t, 2, track.Len())
	assert.Equal(t, tracker.StatusUnknown, track.Status())
}

func TestClient_Track_DateWithoutZone(t *testing.T) {
	provider := mock.NewDataProvider(`{"consignmentSet":[{"packageSet":[{"eventSet":[
		{"status":"DELIVERED","description":"Delivered","dateIso":"2024-03-04T10:00:00"}
	]}]}]}`)
	client := newTestClient(provider)

	track, err := client.Track(context.Background(), "ABC123", "", nil)
	require.NoError(t, err)

	event, _ := track.LatestEvent()
	assert.True(t, event.Timestamp.Equal(time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)))
}

func TestClient_Track_ConsignmentError(t *testing.T) {
	provider := mock.NewDataProvider(`{"consignmentSet":[{"error":{"code":"404","message":"Consignment not found"}}]}`)
	client := newTestClient(provider)

	track, err := client.Track(context.Background(), "ABC123", "", nil)

	assert.Nil(t, track)
	var carrierErr *tracker.CarrierError
	require.True(t, errors.As(err, &carrierErr))
	assert.Equal(t, "Consignment not found", carrierErr.Message)
	assert.Equal(t, "ABC123", carrierErr.ParcelNumber)
}

func TestClient_Track_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"consignmentSet":`},
		{"no consignment", `{"consignmentSet":[]}`},
		{"no package", `{"consignmentSet":[{"packageSet":[]}]}`},
		{"bad date", `{"consignmentSet":[{"packageSet":[{"eventSet":[{"status":"DELIVERED","description":"x","dateIso":"yesterday"}]}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(mock.NewDataProvider(tt.body))

			_, err := client.Track(context.Background(), "ABC123", "", nil)

			var decodeErr *tracker.DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, "ABC123", decodeErr.ParcelNumber)
			assert.Equal(t, tt.body, decodeErr.Raw)
		})
	}
}

func TestClient_Track_FetchError(t *testing.T) {
	provider := mock.NewDataProvider("")
	provider.SimulateErrors = true
	client := newTestClient(provider)

	_, err := client.Track(context.Background(), "ABC123", "", nil)

	assert.True(t, errors.Is(err, tracker.ErrFetch))
	assert.Contains(t, err.Error(), "ABC123")
}

func TestNew_UseMock(t *testing.T) {
	client := bring.New(bring.Config{UseMock: true}, otelzap.New(zap.NewNop()), nil)

	track, err := client.Track(context.Background(), "ABC123", "", nil)
	require.NoError(t, err)
	assert.Equal(t, tracker.StatusDelivered, track.Status())
}

func TestClient_Track_LogsSkippedEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	client := bring.NewWithDataProvider(bring.Config{}, bring.NewMockDataProvider(), otelzap.New(zap.New(core)), nil)

	_, err := client.Track(context.Background(), "70438101015432113", "", nil)
	require.NoError(t, err)

	skipped := logs.FilterMessage("Skipping tracking event").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "DELIVERY_CHANGED", skipped[0].ContextMap()["status_code"])
}
