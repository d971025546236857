package tracker_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/parceltrack/pkg/tracker"
)

var t0 = time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

func TestTrack_SortEvents(t *testing.T) {
	track := tracker.NewTrack()
	track.AddEvent(tracker.NewEvent(tracker.StatusDelivered, "", "third", t0.Add(2*time.Hour), nil))
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "", "first", t0, nil))
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "", "second", t0.Add(time.Hour), nil))

	got := track.SortEvents()
	assert.Same(t, track, got)

	events := track.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0].Description)
	assert.Equal(t, "second", events[1].Description)
	assert.Equal(t, "third", events[2].Description)
}

func TestTrack_SortEvents_Stable(t *testing.T) {
	track := tracker.NewTrack()
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "", "a", t0, nil))
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "", "b", t0, nil))
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "", "c", t0.Add(-time.Minute), nil))

	events := track.SortEvents().Events()
	assert.Equal(t, "c", events[0].Description)
	assert.Equal(t, "a", events[1].Description)
	assert.Equal(t, "b", events[2].Description)
}

func TestTrack_SortEvents_StatusNotMonotonic(t *testing.T) {
	track := tracker.NewTrack()
	track.AddEvent(tracker.NewEvent(tracker.StatusPickup, "", "ready", t0, nil))
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "", "attempted delivery", t0.Add(time.Hour), nil))

	track.SortEvents()
	assert.Equal(t, tracker.StatusInTransit, track.Status())
}

func TestTrack_Status_Empty(t *testing.T) {
	track := tracker.NewTrack()
	assert.Equal(t, tracker.StatusUnknown, track.Status())

	_, ok := track.LatestEvent()
	assert.False(t, ok)
}

func TestTrack_Recipient(t *testing.T) {
	track := tracker.NewTrack()

	_, ok := track.Recipient()
	assert.False(t, ok, "recipient should be unset by default")

	track.SetRecipient("NORDMANN")
	track.SetRecipient("HANSEN")

	got, ok := track.Recipient()
	assert.True(t, ok)
	assert.Equal(t, "HANSEN", got)
}

func TestTrack_AddAdditionalDetails_Overwrites(t *testing.T) {
	track := tracker.NewTrack()
	track.AddAdditionalDetails("parcelShop", map[string]any{"name": "Kiosk A"})
	track.AddAdditionalDetails("parcelShop", map[string]any{"name": "Kiosk B"})

	details := track.AdditionalDetails()
	assert.Equal(t, map[string]any{"name": "Kiosk B"}, details["parcelShop"])

	details["other"] = 1
	assert.NotContains(t, track.AdditionalDetails(), "other")
}

func TestTrack_Events_ReturnsCopy(t *testing.T) {
	track := tracker.NewTrack()
	track.AddEvent(tracker.NewEvent(tracker.StatusInTransit, "Oslo", "in transit", t0, nil))

	events := track.Events()
	events[0].Description = "changed"

	assert.Equal(t, "in transit", track.Events()[0].Description)
}

func TestNewEvent_CopiesDetails(t *testing.T) {
	details := map[string]any{"eventNumber": "3.0"}
	event := tracker.NewEvent(tracker.StatusDelivered, "Berlin", "delivered", t0, details)

	details["eventNumber"] = "0.0"

	got, ok := event.Detail("eventNumber")
	assert.True(t, ok)
	assert.Equal(t, "3.0", got)
}

func TestTrack_MarshalJSON(t *testing.T) {
	track := tracker.NewTrack()
	track.AddEvent(tracker.NewEvent(tracker.StatusDelivered, "Oslo", "delivered", t0, nil))
	track.SetRecipient("HANSEN")

	data, err := json.Marshal(track)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "DELIVERED", got["status"])
	assert.Equal(t, "HANSEN", got["recipient"])
	assert.Len(t, got["events"], 1)
}

func TestTrack_MarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(tracker.NewTrack())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"UNKNOWN","events":[]}`, string(data))
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range tracker.Statuses() {
		assert.True(t, s.Valid(), s.String())
	}
	assert.False(t, tracker.Status("").Valid())
	assert.False(t, tracker.Status("LOST").Valid())
}
