package content

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// HTTPError is returned when an upstream service answers with an error status.
type HTTPError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d %s", e.Service, e.StatusCode, http.StatusText(e.StatusCode))
}

// parseHTTPError builds an HTTPError from an error response, extracting the
// message from {"error": ...}, {"message": ...} or a JSON:API errors array
// when the body is JSON.
func parseHTTPError(service string, resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}

	body := resp.Body()
	herr := &HTTPError{Service: service, StatusCode: resp.StatusCode()}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Errors  []struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Error != "":
			herr.Message = payload.Error
		case payload.Message != "":
			herr.Message = payload.Message
		case len(payload.Errors) > 0:
			parts := make([]string, 0, len(payload.Errors))
			for _, e := range payload.Errors {
				if e.Detail != "" {
					parts = append(parts, e.Title+": "+e.Detail)
				} else {
					parts = append(parts, e.Title)
				}
			}
			herr.Message = strings.Join(parts, "; ")
		}
		return herr
	}

	herr.Message = strings.TrimSpace(string(body))
	return herr
}
