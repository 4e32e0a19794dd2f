// cmd/charsim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/isoglide/pkg/config"
	"github.com/opd-ai/isoglide/pkg/engine"
	"github.com/opd-ai/isoglide/pkg/logging"
	"github.com/opd-ai/isoglide/pkg/render"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to configuration file (JSON or TOML)")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	scriptPath := flag.String("script", "", "Path to a TOML input script")
	duration := flag.Float64("duration", 5, "Simulated seconds")
	hz := flag.Int("hz", 0, "Tick rate override (0 keeps the configured rate)")
	realtime := flag.Bool("realtime", false, "Pace ticks at wall-clock speed")
	view := flag.String("view", "json", "Output: json, ascii, tui or none")
	logFormat := flag.String("log-format", logging.FormatJSON, "Log format: json or text")
	flag.Parse()

	logger := logging.NewLoggerWithWriter(os.Stderr, *logFormat)
	ctx := logging.WithSessionID(context.Background(), "")

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath, *hz)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	var script *Script
	if *scriptPath != "" {
		script, err = LoadScript(*scriptPath)
		if err != nil {
			logger.Error(ctx, "Failed to load script", err,
				"script_path", *scriptPath,
			)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var renderer render.FrameRenderer
	if *view == "tui" {
		screen, err := openScreen(stop)
		if err != nil {
			logger.Error(ctx, "Failed to open terminal screen", err)
			os.Exit(1)
		}
		defer screen.Fini()
		w, h := screen.Size()
		renderer = render.NewScreenRenderer(screen, w, max(h-1, 1), 0.25, cfg.Arena)
	} else {
		renderer, err = newRenderer(*view, cfg, logger)
		if err != nil {
			logger.Error(ctx, "Invalid view", err, "view", *view)
			os.Exit(2)
		}
	}
	// Animated views are unreadable faster than wall-clock time.
	if *view == "ascii" || *view == "tui" {
		*realtime = true
	}

	logger.Info(ctx, "Starting simulation",
		"duration", *duration,
		"tick_rate", cfg.TickRate,
		"steps", stepCount(script),
		"view", *view,
	)
	if err := run(ctx, cfg, logger, script, *duration, *realtime, renderer); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info(ctx, "Simulation interrupted")
			return
		}
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, falling back to defaults when it
// does not exist, then applies environment and flag overrides.
func loadConfig(ctx context.Context, logger *logging.Logger, path string, hz int) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvOverrides(cfg); err != nil {
		return nil, logging.WrapError(err, "environment overrides")
	}
	if hz > 0 {
		cfg.TickRate = hz
		if err := cfg.Validate(); err != nil {
			return nil, logging.WrapError(err, "-hz %d", hz)
		}
	}
	return cfg, nil
}

// newRenderer picks the frame output for the -view flag.
func newRenderer(view string, cfg *config.Config, logger *logging.Logger) (render.FrameRenderer, error) {
	switch view {
	case "json":
		return render.NewJSONRenderer(os.Stdout), nil
	case "ascii":
		return render.NewTerminalRenderer(os.Stdout, 72, 20, 0.25, cfg.Arena, true), nil
	case "none":
		return render.NewNullRenderer(logger), nil
	default:
		return nil, fmt.Errorf("unknown view %q", view)
	}
}

// run drives the simulation and hands every frame to r.
func run(ctx context.Context, cfg *config.Config, logger *logging.Logger, script *Script, duration float64, realtime bool, r render.FrameRenderer) error {
	sim := engine.NewSim(cfg, logger)
	player := NewPlayer(script, sim.TimeStep)

	return sim.Run(ctx, duration, realtime, player.Input, r.Render)
}

func stepCount(s *Script) int {
	if s == nil {
		return 0
	}
	return len(s.Steps)
}
