package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-flockers/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flockers/pkg/ui"
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// LiveGame is the interactive window driver: one simulation step per update
// tick, boids drawn as oriented triangles, sliders to tune the behavior
// weights while the flock is running.
//
// Keys: space pauses, right arrow single-steps while paused, Esc or Q quits.
type LiveGame struct {
	flock    *flock.Flock
	scale    float64
	maxSteps uint64 // 0 = run until closed
	log      zerolog.Logger

	paused   bool
	snapshot []flock.BoidState

	panel            *ui.Panel
	sliderVision     *ui.Slider
	sliderSeparation *ui.Slider
	sliderCohere     *ui.Slider
	sliderSeparate   *ui.Slider
	sliderMatch      *ui.Slider
	sliderMaxSpeed   *ui.Slider

	// Rolling averages in ms, for the stats overlay.
	updateAvg float64
	drawAvg   float64
}

// NewLiveGame builds the window driver for an already-constructed flock.
func NewLiveGame(f *flock.Flock, scale float64, maxSteps uint64, log zerolog.Logger) *LiveGame {
	s := f.Settings()

	panel := ui.NewPanel(10, 10, 200)
	g := &LiveGame{
		flock:            f,
		scale:            scale,
		maxSteps:         maxSteps,
		log:              log,
		panel:            panel,
		sliderVision:     panel.AddSlider("Vision", 1, 50, s.Vision),
		sliderSeparation: panel.AddSlider("Separation", 0, 20, s.Separation),
		sliderCohere:     panel.AddSlider("Cohere", 0, 0.2, s.CohereFactor),
		sliderSeparate:   panel.AddSlider("Separate", 0, 1, s.SeparateFactor),
		sliderMatch:      panel.AddSlider("Match", 0, 0.5, s.MatchFactor),
		sliderMaxSpeed:   panel.AddSlider("Max Speed", 0.1, 5, s.MaxSpeed),
	}
	return g
}

func (g *LiveGame) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.log.Info().Uint64("steps", g.flock.StepCount()).Msg("window closed by user")
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}

	g.panel.Update()
	g.applySliders()

	stepOnce := g.paused && inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)
	if !g.paused || stepOnce {
		g.flock.Step()
	}

	if g.maxSteps > 0 && g.flock.StepCount() >= g.maxSteps {
		g.log.Info().Uint64("steps", g.flock.StepCount()).Msg("step limit reached")
		return ebiten.Termination
	}
	return nil
}

// applySliders pushes the current slider values into the flock settings.
func (g *LiveGame) applySliders() {
	s := g.flock.Settings()
	s.Vision = g.sliderVision.Value
	s.Separation = g.sliderSeparation.Value
	s.CohereFactor = g.sliderCohere.Value
	s.SeparateFactor = g.sliderSeparate.Value
	s.MatchFactor = g.sliderMatch.Value
	s.MaxSpeed = g.sliderMaxSpeed.Value
	if s.MinSpeed > s.MaxSpeed {
		s.MinSpeed = s.MaxSpeed
	}
	g.flock.Tune(s)
}

func (g *LiveGame) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	g.snapshot = g.flock.AppendSnapshot(g.snapshot[:0])
	for _, b := range g.snapshot {
		drawBoidMarker(screen, b, g.scale)
	}

	g.panel.Draw(screen)

	state := "running"
	if g.paused {
		state = "paused (right arrow steps)"
	}
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nStep: %d\nBoids: %d\n%s\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.flock.StepCount(),
		len(g.snapshot),
		state,
		g.updateAvg,
		g.drawAvg)
	w, _ := g.Layout(0, 0)
	ebitenutil.DebugPrintAt(screen, msg, w-160, 10)
}

func (g *LiveGame) Layout(_, _ int) (int, int) {
	s := g.flock.Settings()
	return int(s.Width * g.scale), int(s.Height * g.scale)
}

// drawBoidMarker draws one boid as a triangle oriented along its heading.
func drawBoidMarker(screen *ebiten.Image, b flock.BoidState, scale float64) {
	cx := b.Pos.X * scale
	cy := b.Pos.Y * scale

	tipX := cx + math.Cos(b.Heading)*6
	tipY := cy + math.Sin(b.Heading)*6
	rightX := cx + math.Cos(b.Heading+2.5)*5
	rightY := cy + math.Sin(b.Heading+2.5)*5
	leftX := cx + math.Cos(b.Heading-2.5)*5
	leftY := cy + math.Sin(b.Heading-2.5)*5

	cr := float32(boidColor.R) / 255
	cg := float32(boidColor.G) / 255
	cb := float32(boidColor.B) / 255

	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}

	op := &ebiten.DrawTrianglesOptions{}
	screen.DrawTriangles(vertices, indices, whiteImage, op)
}
