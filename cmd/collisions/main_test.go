package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"collisions/internal/config"
)

func TestLoadConfigPrecedence(t *testing.T) {
	for _, key := range []string{config.EnvSeed, config.EnvRenderer, config.EnvTickMS, config.EnvLog} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")
	if err := os.WriteFile(path, []byte("seed: 3\nrenderer: terminal\ntick_ms: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvTickMS, "8")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	seed := fs.Uint64("seed", 0, "")
	renderer := fs.String("renderer", "", "")
	if err := fs.Parse([]string{"-seed", "21"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(fs, path, filepath.Join(dir, "missing.env"), *seed, *renderer)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Seed != 21 {
		t.Errorf("seed = %d, want the flag value 21", cfg.Seed)
	}
	if cfg.Renderer != config.RendererTerminal {
		t.Errorf("renderer = %q, want the file value (flag not set)", cfg.Renderer)
	}
	if cfg.TickMS != 8 {
		t.Errorf("tick_ms = %v, want the environment value 8", cfg.TickMS)
	}
}

func TestLoadConfigRejectsBadRenderer(t *testing.T) {
	for _, key := range []string{config.EnvSeed, config.EnvRenderer, config.EnvTickMS, config.EnvLog} {
		t.Setenv(key, "")
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	renderer := fs.String("renderer", "", "")
	if err := fs.Parse([]string{"-renderer", "svg"}); err != nil {
		t.Fatal(err)
	}
	_, err := loadConfig(fs, filepath.Join(t.TempDir(), "none.yaml"), "", 0, *renderer)
	if err == nil || !strings.Contains(err.Error(), "renderer") {
		t.Fatalf("loadConfig error = %v, want a renderer error", err)
	}
}

func TestRunWriteConfig(t *testing.T) {
	for _, key := range []string{config.EnvSeed, config.EnvRenderer, config.EnvTickMS, config.EnvLog} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "out", "collisions.yaml")
	if err := run([]string{"-config", path, "-env", "", "-seed", "4", "-write-config"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 4 || cfg.Title != "Collisions" {
		t.Fatalf("written config = %+v", cfg)
	}
}

func TestRunHelp(t *testing.T) {
	if err := run([]string{"-h"}); err != nil {
		t.Fatalf("run -h: %v", err)
	}
}
