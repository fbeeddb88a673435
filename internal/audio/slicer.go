package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"go.senan.xyz/taglib"

	"github.com/Skyluker4/Audfill/internal/logger"
)

// Slicer cuts recognition samples out of audio files with ffmpeg.
type Slicer struct {
	logger *logger.Logger
	ffmpeg string
}

// NewSlicer creates a Slicer that runs the ffmpeg found on PATH.
func NewSlicer(log *logger.Logger) *Slicer {
	return &Slicer{logger: log, ffmpeg: "ffmpeg"}
}

// Length reads the playing time of the file at path.
func Length(path string) (time.Duration, error) {
	props, err := taglib.ReadProperties(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read audio properties of %s: %w", path, err)
	}
	return props.Length, nil
}

// Slice returns the part of path selected by w, encoded as MP3.
func (s *Slicer) Slice(ctx context.Context, path string, w Window) ([]byte, error) {
	total, err := Length(path)
	if err != nil {
		return nil, err
	}

	cut := w.Plan(total, s.logger)
	s.logger.Debug("Cutting %s at %s for %s (file is %s)", path, cut.Start, cut.Length, total)

	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin"}
	if !cut.Whole {
		args = append(args, "-ss", seconds(cut.Start), "-t", seconds(cut.Length))
	}
	args = append(args, "-i", path, "-vn", "-f", "mp3", "pipe:1")

	cmd := exec.CommandContext(ctx, s.ffmpeg, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("slicing cancelled")
		}
		return nil, fmt.Errorf("ffmpeg failed to cut %s: %w\nDetails: %s", path, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
