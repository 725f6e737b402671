package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"fjacquet/alert-extract/internal/logging"
)

// RequestLogger logs every request once it has been served.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				logging.F(logging.FieldMethod, r.Method),
				logging.F(logging.FieldPath, r.URL.Path),
				logging.F(logging.FieldStatus, status),
				logging.F(logging.FieldRequestID, middleware.GetReqID(r.Context())),
				logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
		})
	}
}
