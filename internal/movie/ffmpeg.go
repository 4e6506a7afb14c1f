package movie

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// FFmpegWriter pipes raw RGBA frames to an ffmpeg child process, which
// handles encoding and container selection from the output extension.
type FFmpegWriter struct {
	path   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
}

// NewFFmpegWriter starts the encoder process. The encoder binary is looked
// up before anything is created, so a missing ffmpeg fails cleanly with no
// output file on disk.
func NewFFmpegWriter(encoder, path string, width, height, frameIntervalMs int) (*FFmpegWriter, error) {
	bin, err := exec.LookPath(encoder)
	if err != nil {
		return nil, fmt.Errorf("video encoder %q not found in PATH: %w", encoder, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	fps := 1000.0 / float64(frameIntervalMs)
	cmd := exec.Command(bin,
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		path,
	)
	w := &FFmpegWriter{path: path, cmd: cmd}
	cmd.Stderr = &w.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open encoder pipe: %w", err)
	}
	w.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", encoder, err)
	}
	return w, nil
}

func (w *FFmpegWriter) WriteFrame(frame *image.RGBA) error {
	if _, err := w.stdin.Write(frame.Pix); err != nil {
		return fmt.Errorf("encoder rejected frame: %w (%s)", err, w.stderr.String())
	}
	return nil
}

// Close ends the stream and waits for the encoder. On encoder failure the
// partial output file is removed.
func (w *FFmpegWriter) Close() error {
	if err := w.stdin.Close(); err != nil {
		w.cmd.Wait()
		os.Remove(w.path)
		return fmt.Errorf("failed to close encoder pipe: %w", err)
	}
	if err := w.cmd.Wait(); err != nil {
		os.Remove(w.path)
		return fmt.Errorf("encoder failed: %w (%s)", err, w.stderr.String())
	}
	return nil
}
