package handlers

import (
	"context"
	"net/http"

	"github.com/jyouturner/mediabox/pkg/content"
)

// ContentProvider serves the static lists loaded at startup.
type ContentProvider interface {
	Fact(ctx context.Context) (string, error)
	Quote(ctx context.Context) (content.Quote, error)
	Rizz(ctx context.Context) (string, error)
}

type VerseLookup interface {
	Verse(ctx context.Context, verse string) (string, error)
}

type URLShortener interface {
	Shorten(ctx context.Context, url string) (string, error)
}

type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, image []byte) ([]byte, error)
}

// FancyFunc renders text in several Unicode styles.
type FancyFunc func(text string) (map[string]string, error)

// BaseHandler serves the content routes. Every answer carries a success flag.
type BaseHandler struct {
	boundary
	library   ContentProvider
	bible     VerseLookup
	shortener URLShortener
	remover   BackgroundRemover
	fancy     FancyFunc
	pdf       PDFRenderer
}

func writeSuccess(w http.ResponseWriter, key string, value any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, key: value})
}

func (h *BaseHandler) facts(w http.ResponseWriter, r *http.Request) error {
	fact, err := h.library.Fact(r.Context())
	if err != nil {
		return err
	}
	writeSuccess(w, "fact", fact)
	return nil
}

func (h *BaseHandler) quotes(w http.ResponseWriter, r *http.Request) error {
	quote, err := h.library.Quote(r.Context())
	if err != nil {
		return err
	}
	writeSuccess(w, "quote", quote)
	return nil
}

func (h *BaseHandler) rizz(w http.ResponseWriter, r *http.Request) error {
	text, err := h.library.Rizz(r.Context())
	if err != nil {
		return err
	}
	writeSuccess(w, "text", text)
	return nil
}

func (h *BaseHandler) bibleVerse(w http.ResponseWriter, r *http.Request) error {
	verse := r.URL.Query().Get("verse")
	if verse == "" {
		return ValidationError("Verse is required")
	}
	text, err := h.bible.Verse(r.Context(), verse)
	if err != nil {
		return err
	}
	writeSuccess(w, "text", text)
	return nil
}

func (h *BaseHandler) fancyText(w http.ResponseWriter, r *http.Request) error {
	text := r.URL.Query().Get("text")
	if text == "" {
		return ValidationError("Text is required")
	}
	result, err := h.fancy(text)
	if err != nil {
		return err
	}
	writeSuccess(w, "result", result)
	return nil
}

func (h *BaseHandler) removeBg(w http.ResponseWriter, r *http.Request) error {
	upload := uploadFromContext(r.Context())
	if upload == nil {
		return ValidationError("Image file is required")
	}
	png, err := h.remover.RemoveBackground(r.Context(), upload.Data)
	if err != nil {
		return err
	}
	writeBinary(w, "image/png", png)
	return nil
}

func (h *BaseHandler) tinyURL(w http.ResponseWriter, r *http.Request) error {
	long := r.URL.Query().Get("url")
	if long == "" {
		return ValidationError("URL is required")
	}
	short, err := h.shortener.Shorten(r.Context(), long)
	if err != nil {
		return err
	}
	writeSuccess(w, "result", short)
	return nil
}

func (h *BaseHandler) textToPDF(w http.ResponseWriter, r *http.Request) error {
	fields, err := bodyFields(r)
	if err != nil {
		return err
	}
	text := fields["content"]
	if text == "" {
		return ValidationError("Content is required")
	}
	pdf, err := h.pdf.Render(r.Context(), text)
	if err != nil {
		return err
	}
	writeBinary(w, "application/pdf", pdf)
	return nil
}
