// Command flockers-movie runs the simulation without a display and writes
// the frames to a movie file (gif natively, anything else through ffmpeg).
// With -silent it only steps the model and reports timing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-flockers/internal/conf"
	"github.com/lao-tseu-is-alive/go-flockers/internal/movie"
	"github.com/lao-tseu-is-alive/go-flockers/internal/render"
	"github.com/lao-tseu-is-alive/go-flockers/pkg/flock"
)

func main() {
	configPath := flag.String("config", "", "path to a json config file")
	output := flag.String("o", "", "output file (overrides the config output)")
	frames := flag.Int("frames", 0, "number of frames to export (overrides the config)")
	silent := flag.Bool("silent", false, "run the simulation without writing frames")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := conf.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *frames > 0 {
		cfg.Frames = *frames
	}

	f, err := flock.New(cfg.Flock())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build flock")
	}

	if *silent {
		start := time.Now()
		for i := 0; i < cfg.Frames; i++ {
			f.Step()
		}
		logger.Info().
			Uint64("steps", f.StepCount()).
			Int("boids", cfg.Population).
			Dur("elapsed", time.Since(start)).
			Msg("silent run done")
		return
	}

	if cfg.Output == "" {
		logger.Fatal().Msg("no output file: pass -o or set output in the config")
	}

	raster := render.NewRaster(cfg.WorldWidth, cfg.WorldHeight, cfg.FrameScale)
	w, h := raster.Size()
	writer, err := movie.NewWriter(cfg.Output, w, h, cfg.FrameIntervalMs)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open movie writer")
	}

	logger.Info().
		Str("output", cfg.Output).
		Int("frames", cfg.Frames).
		Str("size", fmt.Sprintf("%dx%d", w, h)).
		Msg("exporting movie")
	if err := movie.Export(f, raster, writer, cfg.Frames, logger); err != nil {
		logger.Fatal().Err(err).Msg("movie export failed")
	}
}
