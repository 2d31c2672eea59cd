package middleware

import (
	"net/http"
	"time"

	"medixscan/internal/platform/logger"
	pnet "medixscan/internal/platform/net"
)

// capture wraps the original ResponseWriter and records the status
type capture struct {
	http.ResponseWriter
	status int
}

func (c *capture) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

// AccessLog logs request duration and status
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &capture{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		log := logger.C(r.Context())
		evt := log.Info()
		if elapsed >= 500*time.Millisecond {
			evt = log.Warn()
		}
		evt.Int("status", sw.status).
			Dur("elapsed", elapsed).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request done")
	})
}

// Requester extracts the caller identity from the X-Requested-By header and
// stores it on the request context for audit attribution downstream
func Requester(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if who := r.Header.Get("X-Requested-By"); who != "" {
			r = r.WithContext(pnet.WithRequester(r.Context(), who))
		}
		next.ServeHTTP(w, r)
	})
}
