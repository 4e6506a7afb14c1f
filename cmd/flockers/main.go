// Command flockers runs the flocking simulation interactively, either in a
// window or, with -terminal, as an animation inside the terminal itself.
package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-flockers/internal/conf"
	"github.com/lao-tseu-is-alive/go-flockers/internal/render"
	"github.com/lao-tseu-is-alive/go-flockers/pkg/flock"
)

func main() {
	configPath := flag.String("config", "", "path to a json config file")
	terminal := flag.Bool("terminal", false, "render in the terminal instead of a window")
	steps := flag.Uint64("steps", 0, "stop after this many steps (0 = run until quit)")
	population := flag.Int("population", 0, "override the number of boids")
	seed := flag.Int64("seed", -1, "override the random seed")
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

	settings := cfg.Flock()
	if *population > 0 {
		settings.Population = *population
	}
	if *seed >= 0 {
		settings.Seed = uint64(*seed)
	}

	f, err := flock.New(settings)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build flock")
	}
	logger.Info().
		Int("boids", settings.Population).
		Float64("width", settings.Width).
		Float64("height", settings.Height).
		Uint64("seed", settings.Seed).
		Msg("flock ready")

	if *terminal {
		runner := render.NewTerminalRunner(f, time.Duration(cfg.FrameIntervalMs)*time.Millisecond, *steps, logger)
		if err := runner.Run(); err != nil {
			logger.Fatal().Err(err).Msg("terminal run failed")
		}
		return
	}

	game := render.NewLiveGame(f, cfg.FrameScale, *steps, logger)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Flockers")
	tps := 1000 / cfg.FrameIntervalMs
	if tps < 1 {
		tps = 1
	}
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal().Err(err).Msg("window run failed")
	}
}
