package render

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-flockers/pkg/flock"
)

// headingGlyphs are the eight arrow runes for a boid marker, indexed by
// heading octant starting at "east" and going clockwise (screen Y is down).
var headingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// TerminalRunner drives the simulation inside a tcell screen, for machines
// without a display. Same keys as the window: space pauses, right arrow
// single-steps while paused, Esc/Q/Ctrl-C quits.
type TerminalRunner struct {
	flock    *flock.Flock
	interval time.Duration
	maxSteps uint64 // 0 = run until quit
	log      zerolog.Logger

	snapshot []flock.BoidState
}

// NewTerminalRunner builds the terminal driver for an existing flock.
func NewTerminalRunner(f *flock.Flock, interval time.Duration, maxSteps uint64, log zerolog.Logger) *TerminalRunner {
	return &TerminalRunner{
		flock:    f,
		interval: interval,
		maxSteps: maxSteps,
		log:      log,
	}
}

// Run owns the screen for the duration of the loop and always releases it,
// so repeated invocations do not leak terminal state.
func (r *TerminalRunner) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("no terminal display available: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	paused := false
	r.draw(screen, paused)

	for {
		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC || tev.Rune() == 'q':
					r.log.Info().Uint64("steps", r.flock.StepCount()).Msg("terminal run stopped by user")
					return nil
				case tev.Rune() == ' ':
					paused = !paused
					r.draw(screen, paused)
				case tev.Key() == tcell.KeyRight && paused:
					r.flock.Step()
					r.draw(screen, paused)
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			if paused {
				continue
			}
			r.flock.Step()
			r.draw(screen, paused)
			if r.maxSteps > 0 && r.flock.StepCount() >= r.maxSteps {
				r.log.Info().Uint64("steps", r.flock.StepCount()).Msg("step limit reached")
				return nil
			}
		}
	}
}

func (r *TerminalRunner) draw(screen tcell.Screen, paused bool) {
	screen.Clear()
	cols, rows := screen.Size()
	if rows > 1 {
		rows-- // bottom row is the status line
	}
	s := r.flock.Settings()

	style := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	r.snapshot = r.flock.AppendSnapshot(r.snapshot[:0])
	for _, b := range r.snapshot {
		x := int(b.Pos.X / s.Width * float64(cols))
		y := int(b.Pos.Y / s.Height * float64(rows))
		if x < 0 || x >= cols || y < 0 || y >= rows {
			continue
		}
		screen.SetContent(x, y, glyphFor(b.Heading), nil, style)
	}

	state := ""
	if paused {
		state = "  [paused]"
	}
	status := fmt.Sprintf(" step %d | %d boids | space pause, q quit%s",
		r.flock.StepCount(), len(r.snapshot), state)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue)
	for i, ch := range status {
		if i >= cols {
			break
		}
		screen.SetContent(i, rows, ch, nil, statusStyle)
	}

	screen.Show()
}

// glyphFor maps a heading in [-Pi, Pi] to its arrow rune.
func glyphFor(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}
