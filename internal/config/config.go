package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/fcount/pkg/fcount"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type IncludeConfig struct {
	Hidden   bool `yaml:"hidden"`
	Readonly bool `yaml:"readonly"`
	Archive  bool `yaml:"archive"`
}

// Settings are the scan options that can come from a config file, the
// environment or the command line. Later sources override earlier ones.
type Settings struct {
	Pattern string        `yaml:"pattern"`
	Include IncludeConfig `yaml:"include"`
	Verbose bool          `yaml:"verbose"`
}

// Defaults returns the built-in settings: default pattern, every attribute
// class excluded, quiet output.
func Defaults() *Settings {
	return &Settings{Pattern: fcount.DefaultPattern}
}

// Load reads a YAML config file over the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns the defaults when the file does
// not exist.
func LoadOptional(path string) (*Settings, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return Defaults(), nil
	}
	return cfg, err
}

// Request builds the scan request for root from these settings.
func (s *Settings) Request(root string) fcount.ScanRequest {
	return fcount.ScanRequest{
		Root:            root,
		Pattern:         s.Pattern,
		IncludeHidden:   s.Include.Hidden,
		IncludeReadonly: s.Include.Readonly,
		IncludeArchive:  s.Include.Archive,
	}
}
