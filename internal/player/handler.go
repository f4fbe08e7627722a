package player

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hls-player/internal/playlist"

	"github.com/go-chi/chi/v5"
)

const segmentContentType = "application/octet-stream"

// Handler exposes the playback pipeline over HTTP using go-chi.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler returns a Handler that uses the given Service and Logger.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// startSessionRequest is the body of POST /sessions.
type startSessionRequest struct {
	URL       string `json:"url"`
	Bandwidth int64  `json:"bandwidth"`
}

// startSessionResponse describes the session created by POST /sessions.
type startSessionResponse struct {
	SessionID string `json:"session_id"`
	Bandwidth int64  `json:"bandwidth"`
	Codecs    string `json:"codecs"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// StartSession handles POST /sessions.
// Body: { "url": "https://cdn/master.m3u8", "bandwidth": 1727000 }.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid session body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if req.URL == "" || req.Bandwidth <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sess, err := h.svc.StartSession(r.Context(), req.URL, req.Bandwidth)
	if err != nil {
		h.log.Error("start session failed",
			slog.String("url", req.URL),
			slog.Int64("bandwidth", req.Bandwidth),
			slog.String("error", err.Error()))
		w.WriteHeader(statusFromError(err))
		return
	}

	h.log.Info("session started",
		slog.String("session_id", string(sess.ID)),
		slog.Int64("bandwidth", sess.Variant.Bandwidth))

	resp := startSessionResponse{
		SessionID: string(sess.ID),
		Bandwidth: sess.Variant.Bandwidth,
		Codecs:    sess.Variant.Codecs,
	}
	if res := sess.Variant.Resolution; res != nil {
		resp.Width = res.Width
		resp.Height = res.Height
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetStatus handles GET /sessions/{session_id}/status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id := SessionID(chi.URLParam(r, "session_id"))

	status, err := h.svc.Status(id)
	if err != nil {
		w.WriteHeader(statusFromError(err))
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// NextSegment handles GET /sessions/{session_id}/segments/next.
// Responds 204 once the buffer is drained.
func (h *Handler) NextSegment(w http.ResponseWriter, r *http.Request) {
	id := SessionID(chi.URLParam(r, "session_id"))

	payload, ok, err := h.svc.NextSegment(id)
	if err != nil {
		w.WriteHeader(statusFromError(err))
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", segmentContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// Advance handles POST /sessions/{session_id}/advance: fetch the next
// segment batch into the buffer.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	id := SessionID(chi.URLParam(r, "session_id"))

	fetched, err := h.svc.Advance(r.Context(), id)
	if err != nil {
		h.log.Error("advance failed",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()))
		w.WriteHeader(statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"fetched": fetched})
}

// Reset handles POST /sessions/{session_id}/reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id := SessionID(chi.URLParam(r, "session_id"))

	if err := h.svc.Reset(id); err != nil {
		w.WriteHeader(statusFromError(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// EndSession handles DELETE /sessions/{session_id}.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	id := SessionID(chi.URLParam(r, "session_id"))

	h.svc.EndSession(id)
	h.log.Info("session ended", slog.String("session_id", string(id)))
	w.WriteHeader(http.StatusOK)
}

// statusFromError maps pipeline errors onto HTTP status codes: unknown
// sessions are 404, bad input URLs 400, upstream failures 502, and manifest
// or selection problems 422.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, playlist.ErrInvalidFormat),
		errors.Is(err, playlist.ErrMissingVersion),
		errors.Is(err, playlist.ErrMissingURI),
		errors.Is(err, playlist.ErrMissingTargetDuration),
		errors.Is(err, playlist.ErrInvalidAttribute),
		errors.Is(err, playlist.ErrNoVariantFound),
		errors.Is(err, ErrNoSegments):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
