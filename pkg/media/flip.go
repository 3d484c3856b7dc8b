package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Flip directions accepted by Processor.Flip.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
	Both       = "both"
)

var stillFormats = map[string]imaging.Format{
	".jpg":  imaging.JPEG,
	".png":  imaging.PNG,
	".bmp":  imaging.BMP,
	".tiff": imaging.TIFF,
}

// Flip mirrors an image or video along direction and returns it encoded in
// the same container as the input.
func (p *Processor) Flip(ctx context.Context, data []byte, mimeType, direction string) ([]byte, error) {
	direction = strings.ToLower(strings.TrimSpace(direction))
	filter, err := flipFilter(direction)
	if err != nil {
		return nil, err
	}

	ext, ok := extensionFor(mimeType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	if format, ok := stillFormats[ext]; ok {
		return flipStill(data, format, direction)
	}

	args := []string{"-i", "{in}", "-vf", filter}
	if isVideo(mimeType) {
		args = append(args, "-c:a", "copy")
	}
	args = append(args, "{out}")
	return p.ffmpeg().run(ctx, job{
		input:     data,
		inputExt:  ext,
		outputExt: ext,
		args:      args,
	})
}

func flipFilter(direction string) (string, error) {
	switch direction {
	case Horizontal:
		return "hflip", nil
	case Vertical:
		return "vflip", nil
	case Both:
		return "hflip,vflip", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, direction)
	}
}

func flipStill(data []byte, format imaging.Format, direction string) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var dst image.Image
	switch direction {
	case Horizontal:
		dst = imaging.FlipH(src)
	case Vertical:
		dst = imaging.FlipV(src)
	default:
		dst = imaging.Rotate180(src)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, format); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
