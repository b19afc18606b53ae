package server

import (
	"net/http"
	"time"

	"github.com/agbru/bigcalc/internal/logging"
)

// loggingMiddleware logs one entry per request with its status and latency.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(sr, r)

		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", clientIP(r)),
			logging.Int("status", sr.status),
			logging.Uint64("bytes", sr.bytes),
			logging.Duration("duration", time.Since(start)),
		)
	}
}

// recoverMiddleware turns a handler panic into a 500 response.
func (s *Server) recoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error("handler panic", nil,
					logging.String("path", r.URL.Path),
					logging.Field{Key: "panic", Value: v},
				)
				s.writeErrorResponse(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next(w, r)
	}
}
