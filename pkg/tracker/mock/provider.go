// Package mock provides scriptable tracker collaborators for tests and offline runs.
package mock

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/tournevent/parceltrack/pkg/tracker"
)

// ErrSimulated is returned by DataProvider when SimulateErrors is set.
var ErrSimulated = errors.New("simulated transport error")

// Call records one Fetch invocation.
type Call struct {
	URL     string
	Headers map[string]string
}

// DataProvider is a mock implementation of tracker.DataProvider.
//
// Lookup order: OnFetch, then Responses keyed by URL, then Body.
type DataProvider struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	Body      string
	Responses map[string]string
	OnFetch   func(ctx context.Context, url string, opts tracker.RequestOptions) (string, error)

	mu    sync.Mutex
	calls []Call
}

// NewDataProvider creates a mock provider that answers every URL with body.
func NewDataProvider(body string) *DataProvider {
	return &DataProvider{Body: body}
}

// Fetch returns the scripted response for url.
func (m *DataProvider) Fetch(ctx context.Context, url string, opts tracker.RequestOptions) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{URL: url, Headers: maps.Clone(opts.Headers)})
	m.mu.Unlock()

	if m.SimulateLatency > 0 {
		select {
		case <-time.After(m.SimulateLatency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.SimulateErrors {
		return "", ErrSimulated
	}

	if m.OnFetch != nil {
		return m.OnFetch(ctx, url, opts)
	}

	if body, ok := m.Responses[url]; ok {
		return body, nil
	}
	return m.Body, nil
}

// Calls returns the recorded Fetch invocations.
func (m *DataProvider) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

var _ tracker.DataProvider = (*DataProvider)(nil)
