// Package server exposes the world directory over a read-only HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hightemp/countrydata/internal/config"
	"github.com/hightemp/countrydata/internal/countries"
	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/flagres"
	"github.com/hightemp/countrydata/internal/world"
)

// Directory is the read side of the world directory served over HTTP.
type Directory interface {
	State() world.State
	ResolveFlag(identifier string) flagres.Ref
	Country(identifier string) (countries.Country, bool)
	Countries() []countries.Country
	Currencies() []currencies.Currency
	Suggest(query string, n int) []string
}

// Handler serves the directory endpoints.
type Handler struct {
	dir    Directory
	logger *slog.Logger
}

// New creates a handler over dir.
func New(dir Directory, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{dir: dir, logger: logger}
}

// Register mounts the directory routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
	r.Get("/flags", h.HandleFlags)
	r.Get("/flags/{identifier}", h.HandleFlag)
	r.Get("/countries", h.HandleCountries)
	r.Get("/countries/{identifier}", h.HandleCountry)
	r.Get("/currencies", h.HandleCurrencies)
}

// NewRouter wires the handler with middleware. A nil gatherer disables /metrics.
func NewRouter(h *Handler, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := chi.NewRouter()

	r.Use(Recovery(logger))
	r.Use(RequestID)
	r.Use(Logger(logger))

	h.Register(r)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// HealthResponse is the response for /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// FlagResponse is one resolved identifier.
type FlagResponse struct {
	Identifier string      `json:"identifier"`
	Flag       flagres.Ref `json:"flag"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Description string   `json:"error_description,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// HandleHealth reports 200 once the directory is ready, 503 before.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	state := h.dir.State()
	if state != world.Ready {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", State: state.String()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", State: state.String()})
}

// HandleFlag resolves a single identifier. Unknown identifiers get the globe.
func (h *Handler) HandleFlag(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "identifier")
	writeJSON(w, http.StatusOK, FlagResponse{Identifier: id, Flag: h.dir.ResolveFlag(id)})
}

// HandleFlags resolves every "id" query value in request order.
func (h *Handler) HandleFlags(w http.ResponseWriter, r *http.Request) {
	ids := r.URL.Query()["id"]
	resp := make([]FlagResponse, len(ids))
	for i, id := range ids {
		resp[i] = FlagResponse{Identifier: id, Flag: h.dir.ResolveFlag(id)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleCountries lists every country in dataset order.
func (h *Handler) HandleCountries(w http.ResponseWriter, _ *http.Request) {
	list := h.dir.Countries()
	if list == nil {
		list = []countries.Country{}
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleCountry returns one country or 404 with suggestions.
func (h *Handler) HandleCountry(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "identifier")
	c, ok := h.dir.Country(id)
	if !ok {
		h.logger.DebugContext(r.Context(), "country not found",
			"identifier", id,
			"request_id", GetRequestID(r.Context()))
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:       "not_found",
			Description: fmt.Sprintf("unknown country %q", id),
			Suggestions: h.dir.Suggest(id, config.DefaultSuggestions),
		})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleCurrencies lists every loaded currency.
func (h *Handler) HandleCurrencies(w http.ResponseWriter, _ *http.Request) {
	list := h.dir.Currencies()
	if list == nil {
		list = []currencies.Currency{}
	}
	writeJSON(w, http.StatusOK, list)
}

// ListenAndServe serves handler on addr until ctx is done, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}
