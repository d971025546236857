package bring

// ============================================================================
// Tracking API response types (match Bring tracking API v2 JSON)
// ============================================================================

// TrackingResponse is the top-level tracking.json document.
type TrackingResponse struct {
	ConsignmentSet []Consignment `json:"consignmentSet"`
}

// Consignment is one consignment in the response.
type Consignment struct {
	ConsignmentID string    `json:"consignmentId,omitempty"`
	Error         *APIError `json:"error,omitempty"`
	PackageSet    []Package `json:"packageSet"`
}

// Package is a single package within a consignment.
type Package struct {
	PackageNumber string       `json:"packageNumber,omitempty"`
	EventSet      []EventEntry `json:"eventSet"`
}

// EventEntry is a single tracking event as reported by Bring.
type EventEntry struct {
	Status      string `json:"status"`
	City        string `json:"city,omitempty"`
	Description string `json:"description"`
	DateIso     string `json:"dateIso"`
}

// APIError is the error object Bring attaches to a consignment it cannot find.
type APIError struct {
	Code    any    `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}
