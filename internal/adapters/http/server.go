package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/herald/api"
	"github.com/aretw0/herald/internal/logging"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/observability"
	"github.com/aretw0/herald/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes bounds inbound request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Verifier checks a request signature over timestamp || body.
type Verifier interface {
	Verify(timestamp string, body []byte, signature string) bool
}

// Dispatcher answers a verified interaction.
type Dispatcher interface {
	Dispatch(ctx context.Context, in domain.InboundInteraction) domain.Response
}

// Decoder turns a raw verified body into an interaction.
type Decoder func(rawBody []byte, signature, timestamp string) (domain.InboundInteraction, error)

// Server serves the interaction webhook and the completion endpoint.
type Server struct {
	verifier     Verifier
	dispatcher   Dispatcher
	decode       Decoder
	tasks        ports.TaskHandler
	workerToken  string
	metrics      *observability.Metrics
	logger       *slog.Logger
	version      string
	maxBodyBytes int64
}

// Option configures the Server.
type Option func(*Server)

// WithTaskHandler mounts POST /tasks/complete backed by h.
func WithTaskHandler(h ports.TaskHandler) Option {
	return func(s *Server) {
		s.tasks = h
	}
}

// WithWorkerToken requires "Authorization: Bearer <token>" on the completion endpoint.
func WithWorkerToken(token string) Option {
	return func(s *Server) {
		s.workerToken = token
	}
}

// WithMetrics records request metrics and mounts GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the access and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDecoder replaces the interaction decoder.
func WithDecoder(d Decoder) Option {
	return func(s *Server) {
		if d != nil {
			s.decode = d
		}
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(verifier Verifier, dispatcher Dispatcher, decode Decoder, opts ...Option) http.Handler {
	s := &Server{
		verifier:     verifier,
		dispatcher:   dispatcher,
		decode:       decode,
		logger:       logging.NewNop(),
		version:      "dev",
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	// Verification runs before the method check, so every method reaches the handler.
	r.HandleFunc("/interactions", s.Interactions)
	if s.tasks != nil {
		r.Post("/tasks/complete", s.CompleteTask)
	}
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(api.Raw())
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// Interactions handles the signed platform callback.
func (s *Server) Interactions(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	// 1. Verify before anything else touches the body
	signature := r.Header.Get(domain.HeaderSignature)
	timestamp := r.Header.Get(domain.HeaderTimestamp)
	if s.verifier == nil || !s.verifier.Verify(timestamp, body, signature) {
		if s.metrics != nil {
			s.metrics.ObserveSignatureFailure()
		}
		logger.Warn("rejected interaction", "error", domain.ErrInvalidSignature)
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidSignature.Error())
		return
	}

	// 2. Only POST carries interactions
	if r.Method != http.MethodPost {
		writeResponse(w, domain.MethodNotAllowed())
		return
	}

	// 3. Decode and dispatch
	in, err := s.decode(body, signature, timestamp)
	if err != nil {
		logger.Warn("failed to decode interaction", "error", err)
		writeError(w, http.StatusBadRequest, "invalid interaction payload")
		return
	}

	writeResponse(w, s.dispatcher.Dispatch(r.Context(), in))
}

// CompleteTask handles a queue delivery.
func (s *Server) CompleteTask(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	if s.workerToken != "" && !bearerMatches(r.Header.Get("Authorization"), s.workerToken) {
		logger.Warn("rejected task delivery: bad bearer token")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var task domain.QueuedTask
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes)).Decode(&task); err != nil {
		logger.Warn("failed to decode task", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ack := s.tasks.Handle(r.Context(), task)
	w.WriteHeader(ack.Status)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "herald",
		"version":     strings.TrimSpace(s.version),
		"api_version": api.Version(),
	})
}

func (s *Server) requestLogger(r *http.Request) *slog.Logger {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return s.logger.With("request_id", id)
	}
	return s.logger
}

func bearerMatches(header, token string) bool {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(header, prefix)), []byte(token)) == 1
}

func writeResponse(w http.ResponseWriter, resp domain.Response) {
	if resp.Body == nil {
		w.WriteHeader(resp.Status)
		return
	}
	writeJSON(w, resp.Status, resp.Body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
