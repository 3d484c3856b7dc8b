package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jyouturner/mediabox/pkg/logger"
	"github.com/jyouturner/mediabox/pkg/metrics"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID propagates an incoming X-Request-ID or assigns a new UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestLogger(r *http.Request, log logger.Logger) logger.Logger {
	if id := RequestIDFromContext(r.Context()); id != "" {
		return log.With(logger.String("request_id", id))
	}
	return log
}

// RequestLogger logs one line per completed request.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := metrics.NewResponseRecorder(w)
			next.ServeHTTP(rec, r)

			requestLogger(r, log).Info("request completed",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", rec.Status()),
				logger.Int64("bytes", rec.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}

// Recoverer turns a panicking handler into a 500 with a JSON error body.
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil || rec == http.ErrAbortHandler {
					if rec != nil {
						panic(rec)
					}
					return
				}
				requestLogger(r, log).Error("handler panic",
					logger.String("panic", fmt.Sprint(rec)),
					logger.String("stack", string(debug.Stack())),
				)
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
