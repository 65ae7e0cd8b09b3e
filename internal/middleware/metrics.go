package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mementoapp/memento/internal/metrics"
)

// Instrument records Prometheus metrics for a single route. The route
// pattern is used as the endpoint label to keep cardinality bounded.
func Instrument(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		rw := newStatusRecorder(w)

		next(rw, r)

		metrics.RecordAPIRequest(r.Method, pattern, strconv.Itoa(rw.status), time.Since(start))
	}
}
