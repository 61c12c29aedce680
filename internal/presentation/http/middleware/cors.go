package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/config"
)

// Headers the API sets that browser clients need to read
var exposedHeaders = []string{
	"Content-Length",
	"Content-Type",
	"X-Request-ID",
	"X-Idempotency-Replayed",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"Retry-After",
}

// Request headers the API always accepts, on top of the configured ones
var requiredHeaders = []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"}

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// Local frontends when nothing is configured
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
		}
	}

	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		}
	}

	corsConfig.AllowHeaders = withHeaders(corsConfig.AllowHeaders, append([]string{"Accept", "Origin"}, requiredHeaders...))

	return cors.New(corsConfig)
}

// withHeaders appends every header in required that is missing from headers
func withHeaders(headers, required []string) []string {
	out := append([]string(nil), headers...)
	for _, r := range required {
		found := false
		for _, h := range out {
			if http.CanonicalHeaderKey(h) == http.CanonicalHeaderKey(r) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, r)
		}
	}
	return out
}
