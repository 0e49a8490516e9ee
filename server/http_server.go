package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"MovieMatch/internal/logging"
	"MovieMatch/internal/metrics"
	"MovieMatch/internal/recommend"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RecommendationsResponse is returned for a known title.
type RecommendationsResponse struct {
	Title   string             `json:"title"`
	Results []recommend.Result `json:"results"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
	Uptime  string `json:"uptime"`
}

// HTTPServer answers recommendation queries over HTTP.
type HTTPServer struct {
	Address     string
	Port        string
	httpServer  *http.Server
	rec         *recommend.Recommender
	suggestions int
	mu          sync.RWMutex
	startTime   time.Time
}

// NewHTTPServer creates a new HTTP server instance
func NewHTTPServer(address, port string, rec *recommend.Recommender, suggestions int) *HTTPServer {
	return &HTTPServer{
		Address:     address,
		Port:        port,
		rec:         rec,
		suggestions: suggestions,
		startTime:   time.Now(),
	}
}

// Handler returns the routed handler, metrics and recovery included.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/health", s.handleHealth)
	r.Get("/v1/recommendations", s.handleRecommendations)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start begins listening for HTTP requests
func (s *HTTPServer) Start() error {
	ln, err := net.Listen("tcp", net.JoinHostPort(s.Address, s.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on %s:%s: %w", s.Address, s.Port, err)
	}

	s.mu.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	go func() {
		logging.L().Info("HTTP server starting", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.L().Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.httpServer = nil
	logging.L().Info("HTTP server stopped", zap.String("addr", net.JoinHostPort(s.Address, s.Port)))
	return nil
}

// IsRunning returns true if the server is running
func (s *HTTPServer) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.httpServer != nil
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Entries: s.rec.Catalog().Len(),
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *HTTPServer) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("title") {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing title query parameter"})
		return
	}
	// The title is matched exactly, surrounding whitespace included.
	title := query.Get("title")

	results, ok := s.rec.Ranked(title)
	metrics.ObserveQuery("http", ok)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:       recommend.ErrTitleNotFound.Error(),
			Suggestions: s.rec.Suggest(title, s.suggestions),
		})
		return
	}
	if results == nil {
		results = []recommend.Result{}
	}
	writeJSON(w, http.StatusOK, RecommendationsResponse{Title: title, Results: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.L().Warn("failed to encode response", zap.Error(err))
	}
}
