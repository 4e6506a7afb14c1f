package movie

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
)

// GIFWriter accumulates frames in memory and encodes the animation when
// closed. Frames are quantized to the Plan 9 palette.
type GIFWriter struct {
	path  string
	delay int // per frame, in hundredths of a second
	anim  gif.GIF
}

// NewGIFWriter prepares a writer for path. Nothing touches the filesystem
// until Close, so an aborted run leaves no file behind.
func NewGIFWriter(path string, frameIntervalMs int) (*GIFWriter, error) {
	delay := frameIntervalMs / 10
	if delay < 1 {
		delay = 1
	}
	return &GIFWriter{path: path, delay: delay}, nil
}

func (w *GIFWriter) WriteFrame(frame *image.RGBA) error {
	pal := image.NewPaletted(frame.Bounds(), palette.Plan9)
	draw.Draw(pal, frame.Bounds(), frame, frame.Bounds().Min, draw.Src)
	w.anim.Image = append(w.anim.Image, pal)
	w.anim.Delay = append(w.anim.Delay, w.delay)
	return nil
}

func (w *GIFWriter) Close() error {
	if len(w.anim.Image) == 0 {
		return fmt.Errorf("no frames written")
	}
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.path, err)
	}
	if err := gif.EncodeAll(f, &w.anim); err != nil {
		f.Close()
		os.Remove(w.path)
		return fmt.Errorf("gif encoding failed: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(w.path)
		return fmt.Errorf("failed to finalize %s: %w", w.path, err)
	}
	return nil
}
