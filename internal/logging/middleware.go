package logging

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// maxLoggedReference caps the citation text carried on a request summary
// line; anything longer is client noise, not a reference.
const maxLoggedReference = 64

// statusRecorder remembers the first status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status != 0 {
		return
	}
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return rec.ResponseWriter.Write(b)
}

// RequestIDMiddleware tags every request with an ID: the client's
// X-Request-ID when supplied, a fresh UUID otherwise. The ID is echoed on
// the response and stored in the request context so every log line emitted
// while serving the request carries it.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

// RequestLogMiddleware emits one summary line per completed request. When
// the request names a citation (the ref query parameter), the line carries
// it, so a grep for a reference finds both the request summary and the
// resolution event it produced. Server errors log at Warn.
func RequestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"status_code", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if ref := r.URL.Query().Get("ref"); ref != "" {
			if len(ref) > maxLoggedReference {
				ref = ref[:maxLoggedReference]
			}
			args = append(args, "reference", ref)
		}

		logger := LoggerFromContext(r.Context())
		if status >= http.StatusInternalServerError {
			logger.Warn("http_request", args...)
			return
		}
		logger.Info("http_request", args...)
	})
}

// CombinedMiddleware is the API server's outermost wrapper: request IDs
// first, then the per-request summary line.
func CombinedMiddleware(next http.Handler) http.Handler {
	return RequestIDMiddleware(RequestLogMiddleware(next))
}
