package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/brochure/internal/logging"
	"github.com/aretw0/brochure/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Client is the slice of brochure.Client the HTTP surface needs.
type Client interface {
	Trigger() <-chan domain.FetchOutcome
	Display(ctx context.Context) (title, price string, err error)
	State() domain.ConnectionState
	Err() error
}

// Server exposes the trigger and the display over HTTP.
type Server struct {
	Client   Client
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer serves /metrics from g.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// OutcomeResponse is the body of POST /trigger.
type OutcomeResponse struct {
	Kind       domain.OutcomeKind `json:"kind"`
	Seq        uint64             `json:"seq"`
	Superseded bool               `json:"superseded,omitempty"`
	Error      string             `json:"error,omitempty"`
	Title      string             `json:"title"`
	Price      string             `json:"price"`
}

// DisplayResponse is the body of GET /display.
type DisplayResponse struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	State domain.ConnectionState `json:"state"`
	Error string                 `json:"error,omitempty"`
}

// NewHandler creates a new HTTP handler for the client.
func NewHandler(client Client, opts ...Option) http.Handler {
	s := &Server{
		Client: client,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/trigger", s.Trigger)
	r.Get("/display", s.Display)
	r.Get("/status", s.Status)
	r.Get("/healthz", s.Health)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Trigger handles POST /trigger. With ?wait=false it returns 202 immediately;
// otherwise it waits for the outcome and the resulting display.
func (s *Server) Trigger(w http.ResponseWriter, r *http.Request) {
	ch := s.Client.Trigger()
	if r.URL.Query().Get("wait") == "false" {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	var outcome domain.FetchOutcome
	select {
	case outcome = <-ch:
	case <-r.Context().Done():
		return
	}

	resp := OutcomeResponse{
		Kind:       outcome.Kind,
		Seq:        outcome.Seq,
		Superseded: outcome.Superseded,
	}
	if outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	title, price, err := s.Client.Display(ctx)
	if err != nil {
		s.Logger.Error("failed to read display", "error", err)
		http.Error(w, "display unavailable", http.StatusInternalServerError)
		return
	}
	resp.Title, resp.Price = title, price

	s.Logger.Info("trigger", "kind", outcome.Kind, "seq", outcome.Seq)
	writeJSON(w, http.StatusOK, resp)
}

// Display handles GET /display.
func (s *Server) Display(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	title, price, err := s.Client.Display(ctx)
	if err != nil {
		http.Error(w, "display unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, DisplayResponse{Title: title, Price: price})
}

// Status handles GET /status.
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{State: s.Client.State()}
	if err := s.Client.Err(); err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /healthz: 200 once ready, 503 otherwise.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.Client.State() != domain.StateReady {
		http.Error(w, s.Client.State().String(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
