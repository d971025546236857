package tracker

import (
	"errors"
	"fmt"
)

// maxRawExcerpt bounds how much of a malformed payload ends up in an error message.
const maxRawExcerpt = 256

// Sentinel errors for the tracking failure kinds.
var (
	// ErrFetch indicates the carrier endpoint could not be reached.
	ErrFetch = errors.New("fetch failed")

	// ErrDecode indicates the carrier answered with a payload we could not interpret.
	ErrDecode = errors.New("malformed tracking payload")

	// ErrCarrier indicates the carrier answered but rejected the query.
	ErrCarrier = errors.New("carrier rejected query")

	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")
)

// FetchError is returned when the DataProvider fails. It deliberately does not
// carry the transport cause.
type FetchError struct {
	Carrier      string
	ParcelNumber string
}

// NewFetchError creates a new FetchError.
func NewFetchError(carrier, parcelNumber string) *FetchError {
	return &FetchError{Carrier: carrier, ParcelNumber: parcelNumber}
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: could not fetch tracking data for [%s]", e.Carrier, e.ParcelNumber)
}

// Is implements errors.Is for FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// DecodeError is returned when a payload is not valid JSON or lacks the expected structure.
type DecodeError struct {
	Carrier      string
	ParcelNumber string
	Raw          string
	Cause        error
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(carrier, parcelNumber, raw string) *DecodeError {
	return &DecodeError{Carrier: carrier, ParcelNumber: parcelNumber, Raw: raw}
}

// WithCause adds a cause to the error.
func (e *DecodeError) WithCause(err error) *DecodeError {
	e.Cause = err
	return e
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%s: unable to decode tracking data [%s] for [%s]", e.Carrier, excerpt(e.Raw), e.ParcelNumber)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// CarrierError is returned when the carrier reports a business-level rejection.
type CarrierError struct {
	Carrier      string
	ParcelNumber string
	Message      string
}

// NewCarrierError creates a new CarrierError.
func NewCarrierError(carrier, parcelNumber, message string) *CarrierError {
	return &CarrierError{Carrier: carrier, ParcelNumber: parcelNumber, Message: message}
}

// Error implements the error interface.
func (e *CarrierError) Error() string {
	return fmt.Sprintf("%s: unable to retrieve tracking data for [%s]: %s", e.Carrier, e.ParcelNumber, e.Message)
}

// Is implements errors.Is for CarrierError.
func (e *CarrierError) Is(target error) bool {
	return target == ErrCarrier
}

// Error kinds as reported by Kind.
const (
	KindFetch    = "fetch"
	KindDecode   = "decode"
	KindCarrier  = "carrier"
	KindNotFound = "not_found"
	KindUnknown  = "unknown"
)

// Kind classifies err into one of the Kind* constants. A nil error yields "".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCarrier):
		return KindCarrier
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrFetch):
		return KindFetch
	case errors.Is(err, ErrCarrierNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}

func excerpt(raw string) string {
	if len(raw) <= maxRawExcerpt {
		return raw
	}
	return raw[:maxRawExcerpt] + "..."
}
