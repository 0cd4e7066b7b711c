package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.txt")
	l := New(path)
	l.now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }

	l.Log("started")
	l.Logf("seed=%d bodies=%d", 2, 100)

	lines := l.Lines()
	want := []string{
		"[2026-10-18 09:30:00] started",
		"[2026-10-18 09:30:00] seed=2 bodies=100",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := string(data); got != strings.Join(want, "\n")+"\n" {
		t.Fatalf("file contents = %q", got)
	}
}

func TestMemoryOnlyLogger(t *testing.T) {
	l := New("")
	l.Log("hello")
	if l.Path() != "" {
		t.Fatalf("Path = %q, want empty", l.Path())
	}
	if n := len(l.Lines()); n != 1 {
		t.Fatalf("lines = %d, want 1", n)
	}
}

func TestLinesAreBounded(t *testing.T) {
	l := New("")
	for i := 0; i < maxLines+25; i++ {
		l.Logf("line %d", i)
	}
	lines := l.Lines()
	if len(lines) != maxLines {
		t.Fatalf("kept %d lines, want %d", len(lines), maxLines)
	}
	if !strings.HasSuffix(lines[0], fmt.Sprintf("line %d", 25)) {
		t.Fatalf("oldest kept line = %q, want line 25", lines[0])
	}
}
