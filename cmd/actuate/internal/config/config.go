package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional configuration file.
const FileName = "actuate.yaml"

// Config represents the optional actuate.yaml configuration.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Scene   string        `yaml:"scene,omitempty"`
	Passes  int           `yaml:"passes,omitempty"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name string `yaml:"name,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	ProjectName string
	Scene       string
	Passes      int
	LogLevel    zerolog.Level
	Verbose     bool
	Metrics     bool
}

// LoadOptional reads actuate.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads actuate.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cfg.Project.Name)
	if name == "" {
		name = defaultProjectName(modulePath, dir)
	}

	if cfg.Passes < 0 {
		return nil, fmt.Errorf("invalid passes %d: must be at least 1", cfg.Passes)
	}
	passes := cfg.Passes
	if passes == 0 {
		passes = 1
	}

	level := zerolog.InfoLevel
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		level, err = zerolog.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", s, err)
		}
	}

	scene := strings.TrimSpace(cfg.Scene)
	if scene != "" && !filepath.IsAbs(scene) {
		scene = filepath.Join(dir, scene)
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		ProjectName: name,
		Scene:       scene,
		Passes:      passes,
		LogLevel:    level,
		Verbose:     cfg.Log.Verbose,
		Metrics:     cfg.Metrics.Enabled,
	}, nil
}

// FindProjectRoot walks up from the current directory to find actuate.yaml
// or go.mod. It returns the current directory when neither exists.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir/go.mod, or "" when
// there is no go.mod.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultProjectName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "actuate_project"
	}
	return base
}
