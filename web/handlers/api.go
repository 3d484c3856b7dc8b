package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/jyouturner/mediabox/pkg/content"
	"github.com/jyouturner/mediabox/pkg/logger"
)

// Sticker metadata used when the form leaves it out.
const (
	DefaultPackName = "Default Pack"
	DefaultAuthor   = "Unknown Author"
)

// MediaProcessor performs the media operations of the /api routes.
type MediaProcessor interface {
	Flip(ctx context.Context, data []byte, mimeType, direction string) ([]byte, error)
	BlackVideo(ctx context.Context, audio []byte) ([]byte, error)
	Sticker(ctx context.Context, data []byte, mimeType, pack, author string) ([]byte, error)
}

// PDFRenderer turns text into PDF documents.
type PDFRenderer interface {
	Render(ctx context.Context, text string) ([]byte, error)
	WriteFile(ctx context.Context, text string) (string, error)
}

// DocumentArchive keeps a copy of generated documents and returns a link to it.
type DocumentArchive interface {
	Put(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// ArchiveURLHeader carries the archive link of a generated PDF.
const ArchiveURLHeader = "X-Archive-URL"

// APIHandler serves the /api media routes. Errors are answered as {"error": msg}.
type APIHandler struct {
	boundary
	dataDir string
	media   MediaProcessor
	pdf     PDFRenderer
	archive DocumentArchive
}

func (h *APIHandler) hello(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Running"})
	return nil
}

// facts reads the fact list from disk on every call.
func (h *APIHandler) facts(w http.ResponseWriter, _ *http.Request) error {
	facts, err := content.ReadFacts(h.dataDir)
	if err != nil {
		return resourceError("Facts", err)
	}
	fact, err := content.Pick(facts)
	if err != nil {
		return InternalError("Failed to read facts file", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"fact": fact})
	return nil
}

// quotes reads the quote list from disk on every call and answers the bare quote.
func (h *APIHandler) quotes(w http.ResponseWriter, _ *http.Request) error {
	quotes, err := content.ReadQuotes(h.dataDir)
	if err != nil {
		return resourceError("Quotes", err)
	}
	quote, err := content.Pick(quotes)
	if err != nil {
		return InternalError("Failed to read quotes file", err)
	}
	writeJSON(w, http.StatusOK, quote)
	return nil
}

func resourceError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return NotFoundError(name+" file not found", err)
	}
	return InternalError(fmt.Sprintf("Failed to read %s file", strings.ToLower(name)), err)
}

func (h *APIHandler) flip(w http.ResponseWriter, r *http.Request) error {
	upload := uploadFromContext(r.Context())
	if upload == nil {
		return ValidationError("No file uploaded")
	}
	direction := r.URL.Query().Get("direction")
	if direction == "" {
		return ValidationError("Direction query parameter is required")
	}

	flipped, err := h.media.Flip(r.Context(), upload.Data, upload.MIMEType, direction)
	if err != nil {
		return err
	}
	writeBinary(w, upload.MIMEType, flipped)
	return nil
}

func (h *APIHandler) blackVideo(w http.ResponseWriter, r *http.Request) error {
	upload := uploadFromContext(r.Context())
	if upload == nil {
		return ValidationError("No audio file uploaded")
	}

	video, err := h.media.BlackVideo(r.Context(), upload.Data)
	if err != nil {
		return InternalError("Failed to convert audio to video", err)
	}
	writeBinary(w, "video/mp4", video)
	return nil
}

func (h *APIHandler) sticker(w http.ResponseWriter, r *http.Request) error {
	upload := uploadFromContext(r.Context())
	if upload == nil {
		return ValidationError("No media file uploaded")
	}
	mt := strings.ToLower(upload.MIMEType)
	if !strings.HasPrefix(mt, "image/") && !strings.HasPrefix(mt, "video/") {
		return ValidationError("Unsupported media type. Only image or video is allowed.")
	}

	fields, err := bodyFields(r)
	if err != nil {
		return err
	}
	pack := fields["packname"]
	if pack == "" {
		pack = DefaultPackName
	}
	author := fields["author"]
	if author == "" {
		author = DefaultAuthor
	}

	sticker, err := h.media.Sticker(r.Context(), upload.Data, upload.MIMEType, pack, author)
	if err != nil {
		return err
	}
	writeBinary(w, "image/webp", sticker)
	return nil
}

// toPDF renders the text into a temporary file and streams it back.
func (h *APIHandler) toPDF(w http.ResponseWriter, r *http.Request) error {
	fields, err := bodyFields(r)
	if err != nil {
		return err
	}
	text := fields["text"]
	if text == "" {
		return ValidationError("Text is required")
	}

	path, err := h.pdf.WriteFile(r.Context(), text)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.New("PDF file not found")
		}
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	if h.archive != nil {
		h.archivePDF(w, r, f, info.Name())
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return nil
}

// archivePDF stores a copy of the document. Failures are logged only.
func (h *APIHandler) archivePDF(w http.ResponseWriter, r *http.Request, f *os.File, fallbackName string) {
	data, err := io.ReadAll(f)
	if err != nil {
		requestLogger(r, h.log).Warn("read pdf for archive", logger.Error(err))
		return
	}
	name := RequestIDFromContext(r.Context())
	if name == "" {
		name = strings.TrimSuffix(fallbackName, ".pdf")
	}
	link, err := h.archive.Put(r.Context(), name+".pdf", "application/pdf", data)
	if err != nil {
		requestLogger(r, h.log).Warn("archive pdf", logger.Error(err))
		return
	}
	w.Header().Set(ArchiveURLHeader, link)
}
