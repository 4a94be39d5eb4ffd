package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/admaster-ai/admaster-backend/pkg/metrics"
)

// Metrics records one observation per request, labelled with the matched
// route pattern rather than the raw path so cardinality stays bounded.
func Metrics(appMetrics *metrics.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			appMetrics.ObserveHTTPRequest(route, r.Method, rec.Status(), time.Since(start))
		})
	}
}
