package graphics

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"collisions/internal/fonts"
)

// LoadFont resolves name (a path or a family name under assets/fonts) and loads it.
// Call after Open. A zero Font means raylib's default font is used.
func LoadFont(name string) (rl.Font, error) {
	path, err := fonts.Resolve(name)
	if err != nil {
		return rl.Font{}, fmt.Errorf("font %q: %w", name, err)
	}
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return rl.Font{}, fmt.Errorf("font %q: %w", path, os.ErrNotExist)
	}
	return f, nil
}

// UnloadFont releases a font returned by LoadFont. The zero Font is ignored.
func UnloadFont(f rl.Font) {
	if f.Texture.ID != 0 {
		rl.UnloadFont(f)
	}
}
