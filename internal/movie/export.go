package movie

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-flockers/internal/render"
	"github.com/lao-tseu-is-alive/go-flockers/pkg/flock"
)

// Export advances the flock one step per frame, renders each snapshot and
// feeds it to the writer, then closes the writer. The writer is always
// closed, even when a frame fails mid-run.
func Export(f *flock.Flock, r *render.Raster, w Writer, frames int, log zerolog.Logger) error {
	if frames <= 0 {
		w.Close()
		return fmt.Errorf("frame count must be positive, got %d", frames)
	}

	start := time.Now()
	lastReport := start
	var snapshot []flock.BoidState

	for i := 0; i < frames; i++ {
		f.Step()
		snapshot = f.AppendSnapshot(snapshot[:0])
		if err := w.WriteFrame(r.Frame(snapshot)); err != nil {
			w.Close()
			return fmt.Errorf("export aborted at frame %d/%d: %w", i+1, frames, err)
		}
		if time.Since(lastReport) >= time.Second {
			log.Info().Int("frame", i+1).Int("total", frames).Msg("exporting")
			lastReport = time.Now()
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize movie: %w", err)
	}
	log.Info().
		Int("frames", frames).
		Dur("elapsed", time.Since(start)).
		Msg("movie export done")
	return nil
}
