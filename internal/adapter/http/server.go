package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/atlasrisk/varscope-backend/internal/usecase/dashboard"
)

const (
	readTimeout    = 10 * time.Second
	writeTimeout   = 15 * time.Second
	handlerTimeout = 10 * time.Second
)

// Server wraps the HTTP listener serving the dashboard API
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewServer builds the router and middleware chain around the dashboard service
func NewServer(addr string, svc *dashboard.Service, corsOrigins []string, logger zerolog.Logger) *Server {
	h := &handler{svc: svc, logger: logger}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware(corsOrigins))
	router.Use(jsonContentTypeMiddleware)

	router.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/var/summary", h.varSummary).Methods(http.MethodGet)
	api.HandleFunc("/var/timeseries", h.varTimeSeries).Methods(http.MethodGet)
	api.HandleFunc("/var/scenario-distribution", h.scenarioDistribution).Methods(http.MethodGet)
	api.HandleFunc("/var/dates", h.varDates).Methods(http.MethodGet)
	api.HandleFunc("/news", h.news).Methods(http.MethodGet)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      http.TimeoutHandler(router, handlerTimeout, `{"error":"request timed out"}`),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger: logger,
	}
}

// ListenAndServe blocks until the listener stops
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the listener
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

type contextKey string

const requestIDKey contextKey = "request_id"

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			requestID, _ := r.Context().Value(requestIDKey).(string)
			logger.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.status).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}

func corsMiddleware(origins []string) mux.MiddlewareFunc {
	allowed := make(map[string]bool, len(origins))
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
