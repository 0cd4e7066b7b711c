package terminal

import (
	"errors"
	"flag"
	"strings"
	"testing"

	"collisions/internal/commands"
	"collisions/internal/logger"
)

func TestSubmit(t *testing.T) {
	log := logger.New("")
	reg := commands.NewRegistry()
	paused := false
	reg.Register("pause", "stop", func(*flag.FlagSet) func() error {
		return func() error { paused = true; return nil }
	})
	reg.Register("fail", "always fails", func(*flag.FlagSet) func() error {
		return func() error { return errors.New("boom") }
	})
	term := New(log, reg)

	term.Submit("cmd pause")
	if !paused {
		t.Fatal("cmd pause did not run")
	}
	term.Submit("cmd fail")
	term.Submit("hello")
	term.Submit("cmd nope")

	wantSuffixes := []string{
		"> cmd pause",
		"> cmd fail",
		"boom",
		"> hello",
		`try "cmd help"`,
		"> cmd nope",
		"unknown command: nope",
	}
	lines := log.Lines()
	if len(lines) != len(wantSuffixes) {
		t.Fatalf("log = %q", lines)
	}
	for i, want := range wantSuffixes {
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], want)
		}
	}
	if term.IsOpen() {
		t.Fatal("terminal starts open")
	}
}

func TestClip(t *testing.T) {
	short := "tick 1"
	if clip(short) != short {
		t.Fatalf("clip(%q) = %q", short, clip(short))
	}
	long := strings.Repeat("x", maxLineLen+10)
	got := clip(long)
	if len(got) != maxLineLen || !strings.HasSuffix(got, "...") {
		t.Fatalf("clip(long) = %q (len %d)", got, len(got))
	}
}
