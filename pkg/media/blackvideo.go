package media

import (
	"bytes"
	"context"
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

// BlackVideoSize is the frame size of generated black videos.
const BlackVideoSize = "1280x720"

// BlackVideo muxes audio under a still black frame into an MP4 sized to the
// audio's duration.
func (p *Processor) BlackVideo(ctx context.Context, audio []byte) ([]byte, error) {
	if len(bytes.TrimSpace(audio)) == 0 {
		return nil, errors.New("audio is empty")
	}

	ext := ".bin"
	if e, ok := extensionFor(mimetype.Detect(audio).String()); ok {
		ext = e
	}

	return p.ffmpeg().run(ctx, job{
		input:     audio,
		inputExt:  ext,
		outputExt: ".mp4",
		args: []string{
			"-f", "lavfi", "-i", "color=c=black:s=" + BlackVideoSize + ":r=1",
			"-i", "{in}",
			"-map", "0:v", "-map", "1:a",
			"-c:v", "libx264", "-tune", "stillimage", "-pix_fmt", "yuv420p",
			"-c:a", "aac", "-b:a", "192k",
			"-shortest",
			"-movflags", "+faststart",
			"{out}",
		},
	})
}
