package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func fontDir(t *testing.T) string {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"))
	touch(t, filepath.Join(dir, "Fira_Mono", "FiraMono-Medium.otf"))
	touch(t, filepath.Join(dir, "README.md"))
	return dir
}

func TestScanDir(t *testing.T) {
	dir := fontDir(t)
	got, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	sort.Strings(got)
	want := []string{"Fira_Mono/FiraMono-Medium.otf", "Inter/Inter-Bold.ttf", "Inter/Inter-Regular.ttf"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ScanDir = %q, want %q", got, want)
	}

	none, err := ScanDir(filepath.Join(dir, "missing"))
	if err != nil || len(none) != 0 {
		t.Fatalf("ScanDir(missing) = %q, %v", none, err)
	}
}

func TestResolve(t *testing.T) {
	dir := fontDir(t)
	tests := []struct {
		name string
		want string
	}{
		{"inter", filepath.Join(dir, "Inter", "Inter-Regular.ttf")},
		{"Inter Bold", filepath.Join(dir, "Inter", "Inter-Bold.ttf")},
		{"fira-mono.ttf", filepath.Join(dir, "Fira_Mono", "FiraMono-Medium.otf")},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.name, dir)
		if err != nil || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v, want %q", tt.name, got, err, tt.want)
		}
	}
}

func TestResolveExistingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	touch(t, path)
	got, err := Resolve(path, t.TempDir())
	if err != nil || got != path {
		t.Fatalf("Resolve = %q, %v, want %q", got, err, path)
	}
}

func TestResolveNotFound(t *testing.T) {
	dir := fontDir(t)
	for _, name := range []string{"", "  ", "Roboto"} {
		if _, err := Resolve(name, dir); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Resolve(%q) error = %v, want not exist", name, err)
		}
	}
}
