package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrFFmpegMissing is returned when the configured ffmpeg binary cannot be found.
var ErrFFmpegMissing = errors.New("ffmpeg binary not found")

// FFmpeg runs ffmpeg over in-memory inputs using a scratch directory per call.
type FFmpeg struct {
	Binary  string
	TempDir string
}

// job describes one ffmpeg invocation. args may reference the placeholders
// {in} and {out}, which are replaced by the scratch file paths.
type job struct {
	input     []byte
	inputExt  string
	outputExt string
	args      []string
}

func (f *FFmpeg) binary() string {
	if f == nil || strings.TrimSpace(f.Binary) == "" {
		return "ffmpeg"
	}
	return f.Binary
}

func (f *FFmpeg) run(ctx context.Context, j job) ([]byte, error) {
	bin, err := exec.LookPath(f.binary())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFFmpegMissing, f.binary())
	}

	dir, err := os.MkdirTemp(f.TempDir, "mediabox-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input"+j.inputExt)
	out := filepath.Join(dir, "output"+j.outputExt)
	if err := os.WriteFile(in, j.input, 0o600); err != nil {
		return nil, fmt.Errorf("write input: %w", err)
	}

	args := []string{"-hide_banner", "-loglevel", "error", "-y"}
	for _, a := range j.args {
		switch a {
		case "{in}":
			a = in
		case "{out}":
			a = out
		}
		args = append(args, a)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("ffmpeg: %w", err)
		}
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, lastLine(msg))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read ffmpeg output: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("ffmpeg produced empty output")
	}
	return data, nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
