package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/spoke-visualizer/internal/config"
)

const (
	progressBarHeight = 30
	progressBarMargin = 20
	progressBarBottom = 60
)

func (g *Game) progressBarRect() (x, y, w, h int) {
	return progressBarMargin, g.height - progressBarBottom - progressBarHeight, g.width - 2*progressBarMargin, progressBarHeight
}

func (g *Game) updateButton() {
	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			// Button was clicked
			g.setErr(g.openAndPlayFileDialog())
		}
		g.buttonPressed = false
	}
}

func (g *Game) updateProgressBar() {
	mouseX, mouseY := ebiten.CursorPosition()
	barX, barY, barWidth, barHeight := g.progressBarRect()

	g.progressBarHovered = mouseX >= barX && mouseX <= barX+barWidth &&
		mouseY >= barY && mouseY <= barY+barHeight

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.progressBarDragging = false
	}
	if !g.player.Loaded() || g.player.Duration() == 0 || barWidth <= 0 {
		return
	}

	mouseProgress := clamp01(float64(mouseX-barX) / float64(barWidth))
	if g.progressBarHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.progressBarDragging = true
		g.seekTo(mouseProgress)
		return
	}

	if g.progressBarDragging {
		// Only seek if the position changed significantly (avoid micro-seeks)
		currentProgress := float64(g.player.Position()) / float64(g.player.Duration())
		if math.Abs(mouseProgress-currentProgress) > 0.01 {
			g.seekTo(mouseProgress)
		}
	}
}

func (g *Game) seekTo(frac float64) {
	if err := g.player.Seek(frac); err != nil {
		g.setErr(err)
		return
	}
	// A seek past the end reloads the track with a new tap.
	g.analyser.SetSource(g.player.Tap())
	g.redrawOnChange()
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	g.drawButton(screen)
	g.drawProgressBar(screen)

	status := ""
	switch {
	case !g.player.Loaded():
		status = "Click the button or press O to open an audio file"
	case g.player.Paused():
		status = "Paused - Space to play, O to open another"
	default:
		status = "Playing - Space to pause, O to open another"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	s := g.cfg.Settings
	settings := fmt.Sprintf("[S] %s  [Up/Down] %d spokes  [G] %s  [+/-] volume %.1f  [T] hide text",
		s.Shape, s.Spokes, s.Gradient, s.Volume)
	colours := fmt.Sprintf("[F] shape %s  [B] background %s  [N] background %s",
		s.Foreground, s.Background1, s.Background2)
	ebitenutil.DebugPrintAt(screen, settings, 12, 28)
	ebitenutil.DebugPrintAt(screen, colours, 12, 44)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, borderColor, false)

	text := "Open File"
	textWidth := len(text) * 8 // Approximate character width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	duration := g.player.Duration()
	if duration == 0 {
		return
	}
	position := g.player.Position()
	barX, barY, barWidth, barHeight := g.progressBarRect()
	progress := clamp01(float64(position) / float64(duration))

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), 2, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	if progress > 0 {
		fill := g.cfg.Settings.Foreground.RGBA
		fill.A = 140
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(progress*float64(barWidth)), float32(barHeight), fill, false)
	}

	indicatorX := float64(barX) + progress*float64(barWidth)
	vector.DrawFilledCircle(screen, float32(indicatorX), float32(barY+barHeight/2), 8, color.RGBA{R: 255, G: 255, B: 255, A: 255}, false)
	vector.StrokeCircle(screen, float32(indicatorX), float32(barY+barHeight/2), 8, 2, color.RGBA{R: 100, G: 110, B: 130, A: 255}, false)

	currentTime := formatDuration(position)
	totalTime := formatDuration(duration)
	ebitenutil.DebugPrintAt(screen, currentTime, barX, barY+barHeight+5)
	ebitenutil.DebugPrintAt(screen, totalTime, barX+barWidth-len(totalTime)*6, barY+barHeight+5)

	if g.progressBarHovered {
		mouseX, mouseY := ebiten.CursorPosition()
		mouseProgress := clamp01(float64(mouseX-barX) / float64(barWidth))
		tooltipTime := formatDuration(time.Duration(mouseProgress * float64(duration)))

		tooltipWidth := len(tooltipTime)*6 + 10
		tooltipX := min(max(mouseX-tooltipWidth/2, 0), g.width-tooltipWidth)
		tooltipY := mouseY - 25

		vector.DrawFilledRect(screen, float32(tooltipX), float32(tooltipY), float32(tooltipWidth), 20, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
		vector.StrokeRect(screen, float32(tooltipX), float32(tooltipY), float32(tooltipWidth), 20, 1, color.RGBA{R: 100, G: 110, B: 130, A: 255}, false)
		ebitenutil.DebugPrintAt(screen, tooltipTime, tooltipX+5, tooltipY+3)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// formatDuration renders d as MM:SS, or H:MM:SS from one hour up.
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
