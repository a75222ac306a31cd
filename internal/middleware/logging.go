package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AnshRaj112/reflect-backend/internal/logger"
)

// RequestLogger logs one line per request with its status and duration.
// Server errors are logged at error level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			keyvals := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
			}
			if id := chimw.GetReqID(r.Context()); id != "" {
				keyvals = append(keyvals, "request_id", id)
			}
			if status >= http.StatusInternalServerError {
				logger.Error("request failed", keyvals...)
				return
			}
			logger.Info("request", keyvals...)
		}()

		next.ServeHTTP(ww, r)
	})
}
