package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tournevent/parceltrack/pkg/tracker"
	"go.uber.org/zap"
)

type trackRequest struct {
	Carrier string `validate:"required,max=32"`
	Parcel  string `validate:"required,max=64,parcelnumber"`
	Lang    string `validate:"omitempty,len=2,alpha"`
}

type carriersResponse struct {
	Carriers []string `json:"carriers"`
}

type trackingURLResponse struct {
	Carrier      string `json:"carrier"`
	ParcelNumber string `json:"parcelNumber"`
	URL          string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, carriersResponse{Carriers: s.registry.Names()})
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	req, ok := s.bindTrackRequest(w, r)
	if !ok {
		return
	}

	t, err := s.registry.Get(req.Carrier)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: tracker.KindNotFound})
		return
	}

	start := time.Now()
	track, err := t.Track(r.Context(), req.Parcel, req.Lang, nil)
	duration := time.Since(start).Seconds()

	if err != nil {
		kind := tracker.Kind(err)
		s.metrics.RecordError(req.Carrier, kind, duration)
		s.logger.Ctx(r.Context()).Warn("Tracking failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("carrier", req.Carrier),
			zap.String("parcel_number", req.Parcel),
			zap.String("kind", kind),
			zap.Error(err),
		)
		writeJSON(w, statusForError(err), errorResponse{Error: err.Error(), Kind: kind})
		return
	}

	s.metrics.RecordTrack(req.Carrier, track.Len(), duration)
	writeJSON(w, http.StatusOK, track)
}

func (s *Server) handleTrackingURL(w http.ResponseWriter, r *http.Request) {
	req, ok := s.bindTrackRequest(w, r)
	if !ok {
		return
	}

	t, err := s.registry.Get(req.Carrier)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: tracker.KindNotFound})
		return
	}

	writeJSON(w, http.StatusOK, trackingURLResponse{
		Carrier:      t.Name(),
		ParcelNumber: req.Parcel,
		URL:          t.TrackingURL(req.Parcel, req.Lang, extraParams(r.URL.Query())),
	})
}

func (s *Server) bindTrackRequest(w http.ResponseWriter, r *http.Request) (trackRequest, bool) {
	req := trackRequest{
		Carrier: chi.URLParam(r, "carrier"),
		Parcel:  chi.URLParam(r, "parcel"),
		Lang:    r.URL.Query().Get("lang"),
	}
	if err := s.validator.Validate(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation"})
		return req, false
	}
	return req, true
}

// extraParams returns the query without the lang selector.
func extraParams(query url.Values) url.Values {
	params := url.Values{}
	for key, values := range query {
		if key == "lang" {
			continue
		}
		params[key] = values
	}
	return params
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, tracker.ErrCarrier):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tracker.ErrDecode):
		return http.StatusBadGateway
	case errors.Is(err, tracker.ErrFetch):
		return http.StatusGatewayTimeout
	case errors.Is(err, tracker.ErrCarrierNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
