// Package movie writes flock animation frames to a video or GIF file
// without needing a display.
package movie

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Writer consumes rendered frames one by one and finalizes the output file
// on Close. Implementations must not leave a partial file behind on failure.
type Writer interface {
	// WriteFrame appends one frame. All frames must share the same size.
	WriteFrame(frame *image.RGBA) error
	// Close flushes and finalizes the output. It must be called exactly once.
	Close() error
}

// NewWriter picks a writer from the output path extension: .gif is encoded
// in-process, everything else is piped to ffmpeg.
func NewWriter(path string, width, height, frameIntervalMs int) (Writer, error) {
	if frameIntervalMs <= 0 {
		return nil, fmt.Errorf("frame interval must be positive, got %d ms", frameIntervalMs)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return NewGIFWriter(path, frameIntervalMs)
	default:
		return NewFFmpegWriter("ffmpeg", path, width, height, frameIntervalMs)
	}
}
