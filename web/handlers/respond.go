package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jyouturner/mediabox/pkg/logger"
	"github.com/jyouturner/mediabox/pkg/metrics"
)

// handlerFunc is a route handler whose failures are turned into an
// ErrorEnvelope by its group's boundary.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

type envelope int

const (
	// bareEnvelope answers {"error": msg} (the /api routes).
	bareEnvelope envelope = iota
	// successEnvelope answers {"success": false, "error": msg}.
	successEnvelope
)

type errorBody struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

// boundary is the per-group error exit shared by every handler of a route group.
type boundary struct {
	log      logger.Logger
	metrics  *metrics.Metrics
	envelope envelope
}

func (b boundary) handle(operation string, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			b.observe(operation, metrics.OutcomeSuccess)
			return
		}

		status, message := http.StatusInternalServerError, err.Error()
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			status, message = reqErr.Status, reqErr.Message
		}

		if status >= http.StatusInternalServerError {
			b.observe(operation, metrics.OutcomeFailure)
			requestLogger(r, b.log).Error("operation failed",
				logger.String("operation", operation),
				logger.Int("status", status),
				logger.Error(err),
			)
		} else {
			b.observe(operation, metrics.OutcomeInvalid)
			requestLogger(r, b.log).Debug("request rejected",
				logger.String("operation", operation),
				logger.Int("status", status),
				logger.String("reason", message),
			)
		}
		b.writeError(w, status, message)
	}
}

func (b boundary) observe(operation, outcome string) {
	if b.metrics != nil {
		b.metrics.ObserveOperation(operation, outcome)
	}
}

func (b boundary) writeError(w http.ResponseWriter, status int, message string) {
	body := errorBody{Error: message}
	if b.envelope == successEnvelope {
		ok := false
		body.Success = &ok
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// writeBinary sends data verbatim with the given content type.
func writeBinary(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
