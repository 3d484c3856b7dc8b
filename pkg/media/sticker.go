package media

import (
	"context"
	"fmt"
	"strings"
)

const (
	// StickerSize is the edge length of the square sticker canvas.
	StickerSize = 512
	// Animated stickers are cut to this many seconds.
	maxStickerSeconds = "10"
	stickerFPS        = "15"
)

// Sticker converts an image or video into a 512x512 WebP sticker, padded
// with transparency. Videos become animated stickers. pack and author are
// written as the WebP title and artist metadata.
func (p *Processor) Sticker(ctx context.Context, data []byte, mimeType, pack, author string) ([]byte, error) {
	mt := strings.ToLower(mimeType)
	if !strings.HasPrefix(mt, "image/") && !strings.HasPrefix(mt, "video/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	ext, ok := extensionFor(mt)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	scale := fmt.Sprintf(
		"scale=%[1]d:%[1]d:force_original_aspect_ratio=decrease,format=rgba,pad=%[1]d:%[1]d:(ow-iw)/2:(oh-ih)/2:color=0x00000000",
		StickerSize,
	)

	args := []string{"-i", "{in}"}
	animated := isVideo(mt) || ext == ".gif"
	if animated {
		args = append(args,
			"-t", maxStickerSeconds,
			"-vf", "fps="+stickerFPS+","+scale,
			"-loop", "0",
			"-an",
		)
	} else {
		args = append(args, "-vf", scale, "-frames:v", "1")
	}
	args = append(args,
		"-c:v", "libwebp",
		"-lossless", "0",
		"-q:v", "75",
		"-metadata", "title="+pack,
		"-metadata", "artist="+author,
		"{out}",
	)

	return p.ffmpeg().run(ctx, job{
		input:     data,
		inputExt:  ext,
		outputExt: ".webp",
		args:      args,
	})
}
