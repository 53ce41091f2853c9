package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmynk/santa/internal/service"
)

// loggingMiddleware logs all incoming requests at debug level; RPC outcomes
// are logged by the Connect interceptor.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		logger.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		logger.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

var (
	corsAllowHeaders = strings.Join([]string{
		"Content-Type",
		"Authorization",
		"Connect-Protocol-Version",
		"Connect-Timeout-Ms",
		service.AdminSecretHeader,
	}, ", ")
	corsExposeHeaders = strings.Join([]string{
		"Connect-Protocol-Version",
		"Connect-Timeout-Ms",
		service.SubmittedHeader,
		service.TotalHeader,
	}, ", ")
)

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		w.Header().Set("Access-Control-Expose-Headers", corsExposeHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
