package tracker

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages registered trackers.
type Registry struct {
	trackers map[string]Tracker
	mu       sync.RWMutex
}

// NewRegistry creates a new tracker registry.
func NewRegistry() *Registry {
	return &Registry{
		trackers: make(map[string]Tracker),
	}
}

// Register adds a tracker to the registry, replacing one with the same name.
func (r *Registry) Register(t Tracker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trackers[t.Name()] = t
}

// Get returns a tracker by name.
func (r *Registry) Get(name string) (Tracker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.trackers[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCarrierNotFound, name)
}

// Names returns the sorted names of all registered trackers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.trackers))
	for name := range r.trackers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Count returns the number of registered trackers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trackers)
}

// TrackResult is the outcome of tracking a single parcel.
type TrackResult struct {
	ParcelNumber string
	Track        *Track
	Err          error
}

// TrackMany tracks several parcels with the same carrier in parallel, running
// at most limit calls at once (limit <= 0 means unbounded). Results keep the
// order of parcels; a failing parcel never aborts the others.
func (r *Registry) TrackMany(ctx context.Context, carrier string, parcels []string, language string, limit int) ([]TrackResult, error) {
	t, err := r.Get(carrier)
	if err != nil {
		return nil, err
	}

	results := make([]TrackResult, len(parcels))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, parcel := range parcels {
		g.Go(func() error {
			track, err := t.Track(ctx, parcel, language, nil)
			results[i] = TrackResult{ParcelNumber: parcel, Track: track, Err: err}
			return nil // Don't fail the group, continue with other parcels
		})
	}

	_ = g.Wait()
	return results, nil
}
