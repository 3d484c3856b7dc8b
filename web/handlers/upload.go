package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jyouturner/mediabox/pkg/logger"
)

// DefaultMaxMemory is the part of a multipart form kept in RAM while parsing.
const DefaultMaxMemory = 32 << 20 // 32MB

// UploadedMedia is a file field read fully into memory. It belongs to the
// request that produced it.
type UploadedMedia struct {
	Field    string
	Filename string
	MIMEType string
	Data     []byte
}

type uploadKey struct{}

// uploadFromContext returns the file stored by Intake, or nil when the
// request carried none.
func uploadFromContext(ctx context.Context) *UploadedMedia {
	m, _ := ctx.Value(uploadKey{}).(*UploadedMedia)
	return m
}

// Intake decodes multipart submissions before a route handler runs.
type Intake struct {
	MaxMemory int64
	Log       logger.Logger
}

// Single wraps next so that the file in field, if any, is available through
// uploadFromContext. A request without the field, a non-multipart request
// or an unreadable form all reach next with no upload attached.
func (in Intake) Single(field string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMultipart(r) {
			next.ServeHTTP(w, r)
			return
		}

		maxMemory := in.MaxMemory
		if maxMemory <= 0 {
			maxMemory = DefaultMaxMemory
		}
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			in.warn(r, "parse multipart form", field, err)
			next.ServeHTTP(w, r)
			return
		}
		defer r.MultipartForm.RemoveAll()

		media, err := readFormFile(r, field)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			in.warn(r, "read upload", field, err)
		default:
			r = r.WithContext(context.WithValue(r.Context(), uploadKey{}, media))
		}
		next.ServeHTTP(w, r)
	})
}

func (in Intake) warn(r *http.Request, msg, field string, err error) {
	if in.Log == nil {
		return
	}
	requestLogger(r, in.Log).Warn(msg, logger.String("field", field), logger.Error(err))
}

func readFormFile(r *http.Request, field string) (*UploadedMedia, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}

	mimeType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(data).String()
	}

	return &UploadedMedia{
		Field:    field,
		Filename: header.Filename,
		MIMEType: mimeType,
		Data:     data,
	}, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// bodyFields returns the scalar fields of a JSON, URL-encoded or multipart
// body. Non-string JSON scalars are rendered with their JSON text.
func bodyFields(r *http.Request) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		// PostFormValue parses urlencoded and multipart bodies, never the query.
		_ = r.PostFormValue("")
		fields := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
		return fields, nil
	}

	if r.Body == nil {
		return map[string]string{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, ValidationError("Invalid JSON body")
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			fields[k] = s
			continue
		}
		if text := string(v); text != "null" && text != "false" {
			fields[k] = text
		}
	}
	return fields, nil
}
