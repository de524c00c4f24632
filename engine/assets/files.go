package assets

import (
	"fmt"
	"os"

	"github.com/hubastard/panes/engine/text"
)

// LoadShader reads a GLSL file. A missing file yields an error wrapping
// fs.ErrNotExist so callers can fall back to built-in sources.
func LoadShader(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", path, err)
	}
	return string(b), nil
}

// LoadFont parses a TrueType/OpenType file into sized faces.
func LoadFont(path string) (*text.Faces, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", path, err)
	}
	f, err := text.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", path, err)
	}
	return f, nil
}
