package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, handler *Handler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/v1/rate", handler.GetRate)
	mux.HandleFunc("POST /api/v1/rate/refresh", handler.RefreshRate)
	mux.HandleFunc("POST /api/v1/valuations", handler.ComputeValuation)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      requestID(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// requestID tags every request with a correlation ID, echoed in the
// X-Request-Id header and attached to the request log line.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		slog.Info("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
