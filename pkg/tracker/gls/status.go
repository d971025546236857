package gls

import (
	"maps"
	"slices"

	"github.com/tournevent/parceltrack/pkg/tracker"
)

// progressDelivered is the only shipment-level statusInfo that confirms a delivery.
const progressDelivered = "DELIVERED"

// statusCodes lists the GLS event numbers per canonical status.
var statusCodes = map[tracker.Status][]string{
	tracker.StatusDelivered: {
		"3.120", // unconfirmed
		"3.121",
		"3.0",
	},
	tracker.StatusInTransit: {
		"0.0", "0.100", "1.0", "11.0", "2.0", "2.106",
		"2.29", "4.40", "90.132", "35.40", "8.0", "6.211",
	},
	tracker.StatusPickup: {
		"2.124",
		"3.124",
	},
	tracker.StatusException: {},
}

var codeIndex = func() map[string]tracker.Status {
	idx := make(map[string]tracker.Status)
	for status, codes := range statusCodes {
		for _, code := range codes {
			idx[code] = status
		}
	}
	return idx
}()

// ResolveStatus maps a GLS event number to a canonical status.
//
// A delivery code is downgraded to IN_TRANSIT unless the shipment-level
// progress indicator also reports DELIVERED.
func ResolveStatus(eventNumber, progressStatusInfo string) tracker.Status {
	status, ok := codeIndex[eventNumber]
	if !ok {
		return tracker.StatusUnknown
	}
	if status == tracker.StatusDelivered && progressStatusInfo != progressDelivered {
		return tracker.StatusInTransit
	}
	return status
}

// StatusCodes returns a copy of the GLS code table.
func StatusCodes() map[tracker.Status][]string {
	out := maps.Clone(statusCodes)
	for k, v := range out {
		out[k] = slices.Clone(v)
	}
	return out
}
