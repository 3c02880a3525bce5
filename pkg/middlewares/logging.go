package middlewares

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

type statusWriter struct {
	http.ResponseWriter

	statusCode int
	size       int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.size += size
	return size, err
}

type LoggingMw struct {
	next http.Handler
}

func NewLoggingMw() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return NewLogging(next)
	}
}

func NewLogging(next http.Handler) *LoggingMw {
	return &LoggingMw{next: next}
}

func (mw *LoggingMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := statusWriter{ResponseWriter: rw, statusCode: http.StatusOK}

	mw.next.ServeHTTP(&sw, r)

	logging.Logger(r.Context()).WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   sw.statusCode,
		"size":     sw.size,
		"duration": time.Since(start).String(),
	}).Info("request")
}
