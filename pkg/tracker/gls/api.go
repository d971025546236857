package gls

import (
	"bytes"
	"encoding/json"
)

// ============================================================================
// Tracking API response types (match GLS rstt001 JSON)
// ============================================================================

// TrackingResponse is the top-level rstt001 document.
type TrackingResponse struct {
	ExceptionText *string    `json:"exceptionText,omitempty"`
	TUStatus      []TUStatus `json:"tuStatus"`
}

// TUStatus is the status block of one transport unit.
type TUStatus struct {
	History     []HistoryItem `json:"history"`
	ProgressBar ProgressBar   `json:"progressBar"`
	Signature   *Signature    `json:"signature,omitempty"`
	ParcelShop  *ParcelShop   `json:"parcelShop,omitempty"`
}

// HistoryItem is one entry of the shipment history.
type HistoryItem struct {
	Address Address `json:"address"`
	EvtDscr string  `json:"evtDscr"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
}

// Address is the location attached to a history item.
type Address struct {
	City        string `json:"city"`
	CountryName string `json:"countryName"`
}

// ProgressBar carries the event codes (parallel to History) and the shipment-level status.
type ProgressBar struct {
	EvtNos     []EventNumber `json:"evtNos"`
	StatusInfo string        `json:"statusInfo"` // DELIVERED | DELIVEREDPS | INTRANSIT
}

// EventNumber is a GLS event code such as "3.121". GLS sends it as a string
// or a bare number; anything else decodes to its raw JSON text so that an odd
// code resolves to UNKNOWN instead of failing the whole payload.
type EventNumber string

// UnmarshalJSON implements json.Unmarshaler.
func (n *EventNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = EventNumber(s)
		return nil
	}
	*n = EventNumber(bytes.TrimSpace(data))
	return nil
}

// String returns the code text.
func (n EventNumber) String() string {
	return string(n)
}

// Signature holds the name captured on delivery.
type Signature struct {
	Value *string `json:"value"`
}

// ParcelShop describes the pickup point the parcel was left at.
type ParcelShop struct {
	Address map[string]any `json:"address,omitempty"`
}
