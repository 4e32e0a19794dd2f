// cmd/isodemo/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/arena"
	"github.com/opd-ai/isoglide/pkg/config"
	"github.com/opd-ai/isoglide/pkg/engine"
	"github.com/opd-ai/isoglide/pkg/logging"
	engorender "github.com/opd-ai/isoglide/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to configuration file (JSON or TOML)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	scale := flag.Float64("scale", 24, "Screen pixels per world unit")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), "")

	var cfg *config.Config
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using demo course",
			"config_path", *configPath,
		)
		cfg = config.DefaultConfig()
		cfg.Arena.Blocks = demoCourse()
	} else {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	if err := config.ApplyEnvOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	sim := engine.NewSim(cfg, logger)
	scene := engorender.NewDemoScene(sim, logger, *scale)

	opts := engo.RunOptions{
		Title:      "Isoglide",
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
		VSync:      true,
	}

	logger.Info(ctx, "Starting demo",
		"width", *width,
		"height", *height,
		"tick_rate", cfg.TickRate,
	)
	engo.Run(opts, scene)
}

// demoCourse is a staircase of platforms, each a single jump above the
// previous one.
func demoCourse() []arena.Block {
	const (
		rise  = 0.35
		depth = 3.0
		steps = 8
	)
	blocks := make([]arena.Block, 0, steps)
	for i := 0; i < steps; i++ {
		blocks = append(blocks, arena.Block{
			Min:  mgl64.Vec2{4 + float64(i)*depth, 0},
			Size: mgl64.Vec2{depth, float64(i+1) * rise},
		})
	}
	return blocks
}
