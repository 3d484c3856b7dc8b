package metrics

import "net/http"

// ResponseRecorder wraps http.ResponseWriter to capture the status code and
// the number of body bytes written.
type ResponseRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w}
}

func (r *ResponseRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *ResponseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.written += int64(n)
	return n, err
}

// Status returns the response status, defaulting to 200 when the handler
// never wrote a header.
func (r *ResponseRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// BytesWritten reports the body size sent so far.
func (r *ResponseRecorder) BytesWritten() int64 {
	return r.written
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *ResponseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
