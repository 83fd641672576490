package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project represents a pokerscript.yaml project file.
type Project struct {
	// Prelude is the path of a custom prelude file, relative to the
	// project file. Empty means the embedded standard prelude.
	Prelude string `yaml:"prelude,omitempty"`

	// Color is one of auto, always or never. Defaults to auto.
	Color string `yaml:"color,omitempty"`

	// Index is the default symbol index database for `pokerscript index`,
	// relative to the project file.
	Index string `yaml:"index,omitempty"`

	// Dir is the directory the project file lives in.
	Dir string `yaml:"-"`
}

// Color modes accepted in the project file and on the command line.
var ColorModes = []string{"auto", "always", "never"}

// DefaultIndexFile is used when the project file names no index.
const DefaultIndexFile = "pokerscript.db"

// LoadConfig reads and parses a pokerscript.yaml file.
func LoadConfig(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses pokerscript.yaml content from bytes.
// The path argument is used for error messages and to resolve relative paths.
func ParseConfig(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.Dir = filepath.Dir(path)
	p.setDefaults()
	return &p, nil
}

// FindConfig searches for pokerscript.yaml starting from dir and walking up
// to parent directories. It returns "" and a nil error when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (p *Project) validate(path string) error {
	if p.Color != "" && !IsColorMode(p.Color) {
		return fmt.Errorf("%s: color must be one of auto, always, never (got %q)", path, p.Color)
	}
	if p.Prelude != "" && filepath.Ext(p.Prelude) != ".yaml" && filepath.Ext(p.Prelude) != ".yml" {
		return fmt.Errorf("%s: prelude %q is not a YAML file", path, p.Prelude)
	}
	return nil
}

func (p *Project) setDefaults() {
	if p.Color == "" {
		p.Color = "auto"
	}
	if p.Index == "" {
		p.Index = DefaultIndexFile
	}
}

// PreludePath returns the custom prelude path resolved against the
// project directory, or "" for the standard prelude.
func (p *Project) PreludePath() string {
	if p.Prelude == "" {
		return ""
	}
	return p.resolve(p.Prelude)
}

// IndexPath returns the index database path resolved against the project
// directory.
func (p *Project) IndexPath() string {
	return p.resolve(p.Index)
}

func (p *Project) resolve(rel string) string {
	if filepath.IsAbs(rel) || p.Dir == "" {
		return rel
	}
	return filepath.Join(p.Dir, rel)
}

// IsColorMode reports whether s names a color mode.
func IsColorMode(s string) bool {
	for _, m := range ColorModes {
		if s == m {
			return true
		}
	}
	return false
}
