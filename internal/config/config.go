package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"collisions/internal/logger"
	"collisions/internal/physics"
	"collisions/internal/render"
	"collisions/internal/scene"
)

// DefaultPath is where -write-config puts the file when no -config path is given.
const DefaultPath = "config/collisions.yaml"

// Renderer names accepted by the renderer field.
const (
	RendererRaylib   = "raylib"
	RendererTerminal = "terminal"
)

// Environment variables read by ApplyEnv.
const (
	EnvSeed     = "COLLISIONS_SEED"
	EnvRenderer = "COLLISIONS_RENDERER"
	EnvTickMS   = "COLLISIONS_TICK_MS"
	EnvLog      = "COLLISIONS_LOG"
)

// Config holds every tunable of a run. It is read once at startup and not changed afterwards.
type Config struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`

	// Palette is a list of RGB triples in [0,1]; each body picks one at generation.
	Palette    [][]float32 `yaml:"palette" toml:"palette"`
	Background []float32   `yaml:"background" toml:"background"`

	BoundaryVertices int     `yaml:"boundary_vertices" toml:"boundary_vertices"`
	Seed             uint64  `yaml:"seed" toml:"seed"` // 0 = time based
	TickMS           float64 `yaml:"tick_ms" toml:"tick_ms"`
	AdjustIterations int     `yaml:"adjust_iterations" toml:"adjust_iterations"` // max adjust sweeps per tick

	Renderer  string `yaml:"renderer" toml:"renderer"`
	LogPath   string `yaml:"log_path" toml:"log_path"`
	ShowFPS   bool   `yaml:"show_fps" toml:"show_fps"`
	ShowStats bool   `yaml:"show_stats" toml:"show_stats"`
	Font      string `yaml:"font,omitempty" toml:"font,omitempty"`
}

// Default returns the built-in configuration: a 625x625 raylib window ticking at 60 Hz.
func Default() Config {
	palette := make([][]float32, len(scene.DefaultPalette))
	for i, c := range scene.DefaultPalette {
		palette[i] = []float32{c.R, c.G, c.B}
	}
	return Config{
		Title:            "Collisions",
		Width:            625,
		Height:           625,
		Palette:          palette,
		Background:       []float32{0.96, 0.96, 0.96},
		BoundaryVertices: scene.DefaultBoundaryVertices,
		TickMS:           1000.0 / 60,
		AdjustIterations: physics.DefaultAdjustIterations,
		Renderer:         RendererRaylib,
		LogPath:          logger.DefaultPath,
		ShowFPS:          true,
	}
}

// Load reads path over the defaults. The format follows the extension: .yaml/.yml or .toml.
// A missing file is not an error and yields Default(). The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory if needed. TOML is used for a .toml path,
// YAML otherwise.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var data []byte
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads envFile (if given and present) into the process environment and overrides
// cfg with the COLLISIONS_* variables. Variables already set in the environment win over
// the file. The result is validated.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvRenderer); v != "" {
		cfg.Renderer = v
	}
	if v := os.Getenv(EnvTickMS); v != "" {
		ms, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTickMS, err)
		}
		cfg.TickMS = ms
	}
	if v := os.Getenv(EnvLog); v != "" {
		cfg.LogPath = v
	}
	return cfg.Validate()
}

// Validate reports the first field that is out of range.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if len(c.Palette) == 0 {
		return errors.New("palette is empty")
	}
	for i, rgb := range c.Palette {
		if err := checkRGB(rgb); err != nil {
			return fmt.Errorf("palette[%d]: %w", i, err)
		}
	}
	if err := checkRGB(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if c.BoundaryVertices < 3 {
		return fmt.Errorf("boundary_vertices %d must be at least 3", c.BoundaryVertices)
	}
	if c.TickMS <= 0 {
		return fmt.Errorf("tick_ms %v must be positive", c.TickMS)
	}
	if c.AdjustIterations < 1 {
		return fmt.Errorf("adjust_iterations %d must be at least 1", c.AdjustIterations)
	}
	switch c.Renderer {
	case RendererRaylib, RendererTerminal:
	default:
		return fmt.Errorf("renderer %q must be %q or %q", c.Renderer, RendererRaylib, RendererTerminal)
	}
	return nil
}

func checkRGB(rgb []float32) error {
	if len(rgb) != 3 {
		return fmt.Errorf("want 3 channels, got %d", len(rgb))
	}
	for _, v := range rgb {
		if v < 0 || v > 1 {
			return fmt.Errorf("channel %v outside [0,1]", v)
		}
	}
	return nil
}

// Interval returns the tick period.
func (c Config) Interval() time.Duration {
	return time.Duration(c.TickMS * float64(time.Millisecond))
}

// BackgroundColor returns the clear color.
func (c Config) BackgroundColor() render.Color {
	return toColor(c.Background)
}

// SceneOptions returns the generation options described by c.
func (c Config) SceneOptions() scene.Options {
	palette := make([]render.Color, len(c.Palette))
	for i, rgb := range c.Palette {
		palette[i] = toColor(rgb)
	}
	return scene.Options{
		Palette:          palette,
		BoundaryVertices: c.BoundaryVertices,
		AdjustIterations: c.AdjustIterations,
	}
}

func toColor(rgb []float32) render.Color {
	if len(rgb) < 3 {
		return render.Color{}
	}
	return render.Color{R: rgb[0], G: rgb[1], B: rgb[2]}
}
