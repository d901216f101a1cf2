// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
)

var ErrNoFrame = errors.New("ffmpeg produced no frame")

type ffmpegExtractor struct {
	binary string
	logger *logger.Logger
}

// NewFFmpegExtractor returns a [FrameExtractor] running the ffmpeg binary at
// path ("ffmpeg" resolves through $PATH).
func NewFFmpegExtractor(path string, logger *logger.Logger) FrameExtractor {
	if path == "" {
		path = "ffmpeg"
	}
	return &ffmpegExtractor{binary: path, logger: logger}
}

// ExtractFrame implements [FrameExtractor]. The video is spooled to a
// temporary file first since container indexes (mp4 moov atoms) may sit at
// the end of the stream.
func (e *ffmpegExtractor) ExtractFrame(ctx context.Context, video io.Reader, at time.Duration) ([]byte, error) {
	tmp, err := os.CreateTemp("", "frame-src-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err = io.Copy(tmp, video); err != nil {
		return nil, fmt.Errorf("spool video: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("spool video: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, ffmpegArgs(tmp.Name(), at)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		e.logger.Err(err).Str("func", "*ffmpegExtractor.ExtractFrame").Str("stderr", strings.TrimSpace(stderr.String())).Msg("ffmpeg failed")
		return nil, fmt.Errorf("run ffmpeg: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, ErrNoFrame
	}

	return stdout.Bytes(), nil
}

func ffmpegArgs(input string, at time.Duration) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-ss", FormatTimestamp(at),
		"-i", input,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1",
	}
}

// FormatTimestamp renders d as HH:MM:SS.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
