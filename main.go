package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iburimskiy/spoke-visualizer/internal/config"
	"github.com/iburimskiy/spoke-visualizer/internal/export"
	"github.com/iburimskiy/spoke-visualizer/internal/game"
	"github.com/iburimskiy/spoke-visualizer/internal/render"
)

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("spokevis: ")

	var fg, bg1, bg2 config.Color
	configFile := flag.String("config", "", "Path to config file (default: ~/.config/spokevis/config.yaml)")
	shape := flag.String("shape", "", "Shape: Circle or Triangle")
	spokes := flag.Int("spokes", 0, "Number of spokes (default: 250)")
	gradient := flag.String("gradient", "", "Background gradient: Solid, Vertical or Horizontal")
	flag.Var(&fg, "fg", "Shape colour, e.g. #FFFFFF or white")
	flag.Var(&bg1, "bg1", "First background colour")
	flag.Var(&bg2, "bg2", "Second background colour")
	volume := flag.Float64("volume", -1, "Volume between 0 and 2 (default: 1)")
	file := flag.String("file", "", "Audio file (wav, mp3, flac) to play on start")
	exportDir := flag.String("export", "", "Render -file to PNG frames in this directory instead of opening a window")
	fps := flag.Int("fps", 60, "Frames per second for -export")
	width := flag.Int("width", 0, "Window or frame width")
	height := flag.Int("height", 0, "Window or frame height")
	flag.Parse()

	cfg := config.Default()
	if p, err := cfg.LoadDefault(); err != nil {
		log.Printf("ignoring %s: %v", p, err)
	}
	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape":
			cfg.Settings.Shape = render.ShapeKind(*shape)
		case "spokes":
			cfg.Settings.Spokes = *spokes
		case "gradient":
			cfg.Settings.Gradient = render.GradientKind(*gradient)
		case "fg":
			cfg.Settings.Foreground = fg
		case "bg1":
			cfg.Settings.Background1 = bg1
		case "bg2":
			cfg.Settings.Background2 = bg2
		case "volume":
			cfg.Settings.Volume = *volume
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *exportDir != "" {
		if *file == "" {
			fmt.Fprintln(os.Stderr, "Error: -export needs -file")
			os.Exit(2)
		}
		if err := runExport(cfg, *file, *exportDir, *fps); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := game.Run(cfg, *file); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(cfg *config.Config, file, dir string, fps int) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	frames, err := export.Run(ctx, file, export.Options{
		Dir:      dir,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		FPS:      fps,
		Settings: cfg.Settings,
		Analysis: cfg.Analysis,
	})
	log.Printf("wrote %d frames to %s", frames, dir)
	return err
}
