// Package media implements the media operations behind the /api routes:
// flipping images and videos, wrapping audio in a black video, and
// converting images or clips into WebP stickers.
package media

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownDirection is returned by Flip for directions other than
	// horizontal, vertical or both.
	ErrUnknownDirection = errors.New("unknown flip direction")
	// ErrUnsupportedType is returned when no encoder is known for a MIME type.
	ErrUnsupportedType = errors.New("unsupported media type")
)

// Processor bundles the media operations. The zero value uses "ffmpeg" from PATH.
type Processor struct {
	FFmpeg *FFmpeg
}

func NewProcessor(ffmpegPath, tempDir string) *Processor {
	return &Processor{FFmpeg: &FFmpeg{Binary: ffmpegPath, TempDir: tempDir}}
}

func (p *Processor) ffmpeg() *FFmpeg {
	if p.FFmpeg == nil {
		return &FFmpeg{}
	}
	return p.FFmpeg
}

var extensions = map[string]string{
	"image/jpeg":       ".jpg",
	"image/jpg":        ".jpg",
	"image/png":        ".png",
	"image/gif":        ".gif",
	"image/webp":       ".webp",
	"image/bmp":        ".bmp",
	"image/tiff":       ".tiff",
	"video/mp4":        ".mp4",
	"video/quicktime":  ".mov",
	"video/webm":       ".webm",
	"video/x-matroska": ".mkv",
	"video/x-msvideo":  ".avi",
	"video/3gpp":       ".3gp",
	"audio/mpeg":       ".mp3",
	"audio/mp4":        ".m4a",
	"audio/aac":        ".aac",
	"audio/ogg":        ".ogg",
	"audio/wav":        ".wav",
	"audio/x-wav":      ".wav",
	"audio/webm":       ".weba",
	"audio/flac":       ".flac",
}

// extensionFor maps a MIME type (parameters ignored) to a file extension
// ffmpeg recognises.
func extensionFor(mimeType string) (string, bool) {
	base := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	ext, ok := extensions[base]
	return ext, ok
}

func isVideo(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "video/")
}
