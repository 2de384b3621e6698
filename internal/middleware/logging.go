package middleware

import (
	"net/http"
	"time"

	"github.com/shoplite/shoplite/pkg/logger"
)

// Logging logs one line per request with method, path, status and duration.
// Request bodies are never logged; signup and login payloads carry
// credentials.
func Logging(log *logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewDefault("http")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithField("request_id", GetRequestID(r.Context())).
				Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
