package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"collisions/internal/commands"
	"collisions/internal/config"
	"collisions/internal/debug"
	"collisions/internal/driver"
	"collisions/internal/graphics"
	"collisions/internal/logger"
	"collisions/internal/sim"
	"collisions/internal/terminal"
	"collisions/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

func run(args []string) error {
	fs := flag.NewFlagSet("collisions", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "YAML or TOML config file (missing file = defaults)")
	envFile := fs.String("env", ".env", "optional env file with COLLISIONS_* overrides")
	seed := fs.Uint64("seed", 0, "layout seed, 0 = time based (overrides config)")
	renderer := fs.String("renderer", "", `"raylib" or "terminal" (overrides config)`)
	writeConfig := fs.Bool("write-config", false, "write the effective config to -config and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(fs, *configPath, *envFile, *seed, *renderer)
	if err != nil {
		return err
	}
	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("wrote %s\n", *configPath)
		return nil
	}

	log := logger.New(cfg.LogPath)
	log.Logf("collisions: renderer=%s tick=%v seed=%d", cfg.Renderer, cfg.Interval(), cfg.Seed)

	ctrl, err := sim.New(cfg.SceneOptions(), cfg.Seed, log)
	if err != nil {
		return err
	}
	reg := commands.NewRegistry()
	ctrl.Register(reg)
	reg.Register("help", "list commands", func(*flag.FlagSet) func() error {
		return func() error {
			for _, line := range reg.Help() {
				log.Log(line)
			}
			return nil
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := driver.Options{Interval: cfg.Interval(), Background: cfg.BackgroundColor(), Log: log}
	if cfg.Renderer == config.RendererTerminal {
		err = runTerminal(ctx, cfg, ctrl, reg, log, opts)
	} else {
		err = runWindow(ctx, cfg, ctrl, reg, log, opts)
	}
	log.Logf("collisions: exit %s", ctrl.Stats())
	return err
}

// loadConfig applies, in order: defaults, the config file, the env file and environment, flags.
func loadConfig(fs *flag.FlagSet, path, envFile string, seed uint64, renderer string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, envFile); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "renderer":
			cfg.Renderer = renderer
		}
	})
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func runWindow(ctx context.Context, cfg config.Config, ctrl *sim.Controller, reg *commands.Registry, log *logger.Logger, opts driver.Options) error {
	win, err := graphics.Open(graphics.Options{Title: cfg.Title, Width: cfg.Width, Height: cfg.Height})
	if err != nil {
		return err
	}
	defer win.Close()

	loop := driver.NewLoop(ctrl, win, win, opts)

	dbg := debug.New(
		func() string {
			st := ctrl.Stats()
			return fmt.Sprintf("seed %d  bodies %d", st.Seed, st.Bodies)
		},
		func() string {
			st := ctrl.Stats()
			state := "tick"
			if st.Paused {
				state = "paused at"
			}
			return fmt.Sprintf("%s %d  energy %.5f", state, st.Ticks, st.Energy)
		},
		func() string {
			st := ctrl.Stats().Total
			return fmt.Sprintf("collisions %d  corrections %d", st.Collisions, st.Corrections)
		},
		func() string {
			return fmt.Sprintf("skipped %d", loop.Stats().Skipped)
		},
	)
	dbg.ShowFPS = cfg.ShowFPS
	dbg.ShowStats = cfg.ShowStats
	term := terminal.New(log, reg)

	if cfg.Font != "" {
		font, err := graphics.LoadFont(cfg.Font)
		if err != nil {
			log.Logf("collisions: %v, using the default font", err)
		} else {
			defer graphics.UnloadFont(font)
			dbg.SetFont(font)
			term.SetFont(font)
		}
	}
	win.AddOverlay(dbg)
	win.AddOverlay(term)

	return loop.Run(ctx)
}

func runTerminal(ctx context.Context, cfg config.Config, ctrl *sim.Controller, reg *commands.Registry, log *logger.Logger, opts driver.Options) error {
	scr, err := tui.Open(reg, log)
	if err != nil {
		return err
	}
	defer scr.Close()
	if cfg.ShowStats {
		scr.SetStatus(func() string { return ctrl.Stats().String() })
	}
	return driver.NewLoop(ctrl, scr, scr, opts).Run(ctx)
}
