package bring

import (
	"maps"

	"github.com/tournevent/parceltrack/pkg/tracker"
)

// deliveryChangedCode marks a rescheduling notice. It carries no new status
// and is dropped from the timeline.
const deliveryChangedCode = "DELIVERY_CHANGED"

var statusTable = map[string]tracker.Status{
	"PRE_NOTIFIED":           tracker.StatusInTransit,
	"IN_TRANSIT":             tracker.StatusInTransit,
	"TRANSPORT_TO_RECIPIENT": tracker.StatusInTransit,
	"ATTEMPTED_DELIVERY":     tracker.StatusInTransit,
	"DELIVERED":              tracker.StatusDelivered,
	"READY_FOR_PICKUP":       tracker.StatusPickup,
}

// ResolveStatus maps a Bring event status code to a canonical status.
// Unknown codes resolve to tracker.StatusUnknown.
func ResolveStatus(code string) tracker.Status {
	if s, ok := statusTable[code]; ok {
		return s
	}
	return tracker.StatusUnknown
}

// StatusTable returns a copy of the Bring code table.
func StatusTable() map[string]tracker.Status {
	return maps.Clone(statusTable)
}

// IsSkipped reports whether events with this code are left out of the timeline.
func IsSkipped(code string) bool {
	return code == deliveryChangedCode
}
