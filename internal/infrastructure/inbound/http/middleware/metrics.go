package middleware

import (
	"net/http"
	"strconv"
	"time"

	ports "devlog-post-service/internal/domain/ports/output"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics records request counts and latencies labelled by route pattern so
// path parameters do not explode label cardinality.
func Metrics(metrics ports.MetricsProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			code := strconv.Itoa(status)
			metrics.IncrementHTTPRequests(r.Method, route, code)
			metrics.RecordHTTPRequestDuration(r.Method, route, code, time.Since(start))
		})
	}
}
