package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxExtractBody = 64 << 10

// Server exposes health, readiness, metrics, and ad-hoc extraction endpoints.
type Server struct {
	httpServer *http.Server
	extractor  *domain.Extractor
	logger     *slog.Logger
}

// ExtractRequest is the body accepted by POST /extract.
type ExtractRequest struct {
	Text string `json:"text"`
	Time string `json:"time"`
}

// ExtractResponse is the body returned by POST /extract.
type ExtractResponse struct {
	Observations []domain.WaitObservation `json:"observations"`
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /extract routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, extractor *domain.Extractor, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		extractor: extractor,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /extract", s.handleExtract)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleExtract runs the extractor over a single post without touching Kafka.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExtractBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Time) == "" {
		writeError(w, http.StatusBadRequest, errors.New("time is required"))
		return
	}

	ts, err := domain.ParseTimestamp(req.Time)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	obs := s.extractor.ExtractAll(domain.RawMessage{Text: req.Text, Timestamp: ts})
	if obs == nil {
		obs = []domain.WaitObservation{}
	}
	s.logger.Debug("extract request", "observations", len(obs))
	sharedobs.WriteJSON(w, http.StatusOK, ExtractResponse{Observations: obs})
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
