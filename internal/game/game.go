// Package game runs the visualizer in an ebiten window: it wires the speaker
// player, the analyser, the scheduler and the renderer together and handles
// the keyboard and mouse controls.
package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/spoke-visualizer/internal/audio"
	"github.com/iburimskiy/spoke-visualizer/internal/config"
	"github.com/iburimskiy/spoke-visualizer/internal/render"
	"github.com/iburimskiy/spoke-visualizer/internal/sampler"
	"github.com/iburimskiy/spoke-visualizer/internal/scheduler"
	"github.com/iburimskiy/spoke-visualizer/internal/spectrum"
)

type Game struct {
	cfg *config.Config

	// audio
	player   *audio.Player
	analyser *spectrum.Analyser
	sampler  *sampler.Sampler

	// viz
	sched         *scheduler.Scheduler
	canvas        *canvas
	width, height int
	resized       bool
	lastRenderErr string
	lastShape     render.ShapeKind

	// progress bar
	progressBarHovered  bool
	progressBarDragging bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	showText bool
	lastErr  error
}

// New builds a game from cfg. cfg.Settings stays owned by the caller's config
// and is read on every rendered frame.
func New(cfg *config.Config) *Game {
	analyser := spectrum.New(nil, cfg.Analysis)
	g := &Game{
		cfg:       cfg,
		player:    audio.NewPlayer(speakerOutput{}, cfg.Settings.Volume),
		analyser:  analyser,
		sampler:   sampler.New(analyser),
		sched:     scheduler.New(config.FramesAfterPause),
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
		prevKey:   map[ebiten.Key]bool{},
		showText:  cfg.ShowText,
		lastShape: render.ShapeKinds[0],
	}
	g.canvas = newCanvas(g.width, g.height)
	// Draw the visualizer once at startup.
	g.sched.Request(false)
	return g
}

// Run opens the window and blocks until it is closed. A non-empty file starts
// playing right away.
func Run(cfg *config.Config, file string) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := New(cfg)
	defer g.Close()
	if file != "" {
		if err := g.Open(file); err != nil {
			return err
		}
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Open loads and plays a track and starts the animation loop.
func (g *Game) Open(path string) error {
	if err := g.player.Load(path); err != nil {
		return err
	}
	g.analyser.SetSource(g.player.Tap())
	g.sched.Request(true)
	return nil
}

func (g *Game) Close() {
	g.player.Close()
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if g.showText {
		g.updateButton()
		g.updateProgressBar()
	}

	if justPressed(ebiten.KeySpace) {
		g.togglePlayback()
	}
	if justPressed(ebiten.KeyO) {
		g.setErr(g.openAndPlayFileDialog())
	}
	if justPressed(ebiten.KeyT) {
		g.showText = !g.showText
	}
	if justPressed(ebiten.KeyS) {
		g.cfg.Settings.CycleShape()
		g.redrawOnChange()
	}
	if justPressed(ebiten.KeyG) {
		g.cfg.Settings.CycleGradient()
		g.redrawOnChange()
	}
	if justPressed(ebiten.KeyF) {
		g.cfg.Settings.CycleForeground()
		g.redrawOnChange()
	}
	if justPressed(ebiten.KeyB) {
		g.cfg.Settings.CycleBackground1()
		g.redrawOnChange()
	}
	if justPressed(ebiten.KeyN) {
		g.cfg.Settings.CycleBackground2()
		g.redrawOnChange()
	}
	if justPressed(ebiten.KeyUp) {
		g.cfg.Settings.AdjustSpokes(config.SpokeStep)
		g.redrawOnChange()
	}
	if justPressed(ebiten.KeyDown) {
		g.cfg.Settings.AdjustSpokes(-config.SpokeStep)
		g.redrawOnChange()
	}
	if justPressed(ebiten.KeyEqual) || justPressed(ebiten.KeyKPAdd) {
		g.cfg.Settings.AdjustVolume(config.VolumeStep)
		g.player.SetVolume(g.cfg.Settings.Volume)
	}
	if justPressed(ebiten.KeyMinus) || justPressed(ebiten.KeyKPSubtract) {
		g.cfg.Settings.AdjustVolume(-config.VolumeStep)
		g.player.SetVolume(g.cfg.Settings.Volume)
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.resized {
		g.resized = false
		g.canvas.dispose()
		g.canvas = newCanvas(g.width, g.height)
		g.sched.Request(false)
	}

	g.sched.Tick(!g.player.Paused(), g.renderFrame)
	return nil
}

// renderFrame samples the analyser and repaints the canvas. An unknown shape
// keeps drawing the last valid one. Bad settings are logged once and the rest
// of the frame is still drawn.
func (g *Game) renderFrame() {
	s := g.cfg.Settings
	shape := s.ShapeParamsOr(g.lastShape)
	g.lastShape = shape.Kind
	err := render.DrawFrame(g.canvas, g.sampler.Sample(), shape, s.GradientParams())
	if shape.Kind != s.Shape {
		err = errors.Join(fmt.Errorf("%w: %q, keeping %s", render.ErrUnknownShape, s.Shape, shape.Kind), err)
	}
	if err == nil {
		g.lastRenderErr = ""
		return
	}
	if msg := err.Error(); msg != g.lastRenderErr {
		g.lastRenderErr = msg
		log.Printf("render: %v", err)
	}
}

// redrawOnChange repaints after a settings change. While playing, the loop
// already picks the change up on its next frame.
func (g *Game) redrawOnChange() {
	if g.player.Paused() {
		g.sched.Request(false)
	}
}

func (g *Game) togglePlayback() {
	if !g.player.Loaded() {
		g.setErr(g.openAndPlayFileDialog())
		return
	}
	if err := g.player.TogglePause(); err != nil {
		g.setErr(err)
		return
	}
	g.setErr(nil)
	g.analyser.SetSource(g.player.Tap())
	g.sched.Request(true)
}

func (g *Game) openAndPlayFileDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Extensions,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.Open(filename)
}

func (g *Game) setErr(err error) {
	g.lastErr = err
	if err != nil {
		log.Printf("error: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.canvas.img, &ebiten.DrawImageOptions{})
	if g.showText {
		g.drawHUD(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.resized = true
	}
	return g.width, g.height
}
