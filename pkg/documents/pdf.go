// Package documents renders text into PDF documents and archives them.
package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
)

// ErrEmptyText is returned when there is nothing to render.
var ErrEmptyText = errors.New("text is empty")

const (
	fontFamily = "Helvetica"
	fontSize   = 12
	lineHeight = 6
	margin     = 20
)

// Renderer lays out plain text on A4 pages.
type Renderer struct {
	// TempDir receives files written by WriteFile; empty means os.TempDir.
	TempDir string
	Creator string
}

func NewRenderer(tempDir string) *Renderer {
	return &Renderer{TempDir: tempDir, Creator: "mediabox"}
}

// Render returns the PDF bytes for text.
func (r *Renderer) Render(ctx context.Context, text string) ([]byte, error) {
	pdf, err := r.build(ctx, text)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders text into a new temporary file and returns its path.
// The caller owns the file and should remove it when done.
func (r *Renderer) WriteFile(ctx context.Context, text string) (string, error) {
	data, err := r.Render(ctx, text)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(r.TempDir, "document-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create pdf file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write pdf file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close pdf file: %w", err)
	}
	return f.Name(), nil
}

func (r *Renderer) build(ctx context.Context, text string) (*fpdf.Fpdf, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	if r.Creator != "" {
		pdf.SetCreator(r.Creator, true)
	}
	pdf.AddPage()
	pdf.SetFont(fontFamily, "", fontSize)

	// Core fonts are cp1252; characters outside it render as '.'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	pdf.MultiCell(0, lineHeight, tr(text), "", "L", false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}
	return pdf, nil
}
