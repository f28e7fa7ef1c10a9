package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/eugenenazirov/apiconfig/internal/config"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// SettingsProvider resolves the API settings served to front-ends.
type SettingsProvider interface {
	Snapshot() config.Settings
	Lookup(name string) (key string, value any, ok bool)
	SettingNames() []string
}

// Handler serves the resolved API settings over HTTP.
type Handler struct {
	settings SettingsProvider
	clock    func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler reading from settings.
func NewHandler(settings SettingsProvider, opts ...HandlerOption) *Handler {
	h := &Handler{
		settings: settings,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	})
}

// handleGetConfig resolves a fresh snapshot on every request.
func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	noteSetting(r.Context(), "*")
	settings := h.settings.Snapshot()
	writeJSON(w, http.StatusOK, configResponse{
		Settings:    settings,
		RequestBase: settings.RequestBase(),
		ResolvedAt:  h.clock(),
	})
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	key, value, ok := h.settings.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown setting", "no setting named "+name,
			"Use one of "+strings.Join(h.settings.SettingNames(), ", "))
		return
	}
	noteSetting(r.Context(), name)

	writeJSON(w, http.StatusOK, settingResponse{
		Name:  name,
		Key:   key,
		Value: value,
	})
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type configResponse struct {
	config.Settings
	RequestBase string    `json:"requestBase"`
	ResolvedAt  time.Time `json:"resolvedAt"`
}

type settingResponse struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}
