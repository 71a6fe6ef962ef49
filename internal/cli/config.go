package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in each package directory when --config is
// not given.
const ConfigFileName = "iterstruct.yaml"

// Config is the contents of an iterstruct.yaml file.
//
//	output: fields_gen.go
//	types:
//	  Point: [names, "dump names=DumpFieldNames"]
type Config struct {
	// Output overrides the generated file name.
	Output string `yaml:"output"`

	// Types requests derivations for types without directives.
	Types map[string][]string `yaml:"types"`
}

// LoadConfig reads and strictly decodes a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown keys
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if err := validateOutput(cfg.Output); err != nil {
		return err
	}
	names := make([]string, 0, len(cfg.Types))
	for name := range cfg.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if len(cfg.Types[name]) == 0 {
			return fmt.Errorf("type %s lists no derivations", name)
		}
	}
	return nil
}

// validateOutput accepts "" (the default) or a bare .go file name, which
// keeps generated files inside the package directory.
func validateOutput(name string) error {
	if name != "" && (filepath.Base(name) != name || filepath.Ext(name) != ".go") {
		return fmt.Errorf("output %q must be a .go file name without directories", name)
	}
	return nil
}

// resolveConfig returns the config for dir: the explicit path when set,
// dir/iterstruct.yaml when present, or an empty config.
func resolveConfig(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return LoadConfig(path)
}

// merge layers flag values over the file config.
func (c *Config) merge(output string, types map[string][]string) *Config {
	out := &Config{Output: c.Output, Types: make(map[string][]string, len(c.Types)+len(types))}
	if output != "" {
		out.Output = output
	}
	for name, derivs := range c.Types {
		out.Types[name] = append([]string(nil), derivs...)
	}
	for name, derivs := range types {
		out.Types[name] = append(out.Types[name], derivs...)
	}
	return out
}
