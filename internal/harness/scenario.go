package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// InputFile is the file name case sources are parsed under.
const InputFile = "input.go"

// Case defines a conformance case: one Go source file and the generation
// outcome expected for it.
type Case struct {
	// Name uniquely identifies this case and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this case validates.
	Description string `yaml:"description"`

	// Source is the Go file to generate for.
	Source string `yaml:"source"`

	// Types requests derivations for types without directives.
	Types map[string][]string `yaml:"types,omitempty"`

	// Expect describes the expected outcome.
	Expect Expectation `yaml:"expect"`
}

// Expectation is the expected generation outcome.
type Expectation struct {
	// OK is true when every pass must succeed.
	OK bool `yaml:"ok"`

	// Types are checked against the augmentations, by type name.
	Types []TypeExpectation `yaml:"types,omitempty"`

	// Diagnostics are matched in order and must account for every
	// diagnostic produced.
	Diagnostics []DiagnosticExpectation `yaml:"diagnostics,omitempty"`
}

// TypeExpectation describes one expected augmentation.
type TypeExpectation struct {
	Type string `yaml:"type"`

	// Names is the expected field order. Absent means unchecked;
	// an empty list expects a record without fields.
	Names []string `yaml:"names,omitempty"`

	// Members are the expected generated members, in emission order.
	Members []string `yaml:"members,omitempty"`
}

// DiagnosticExpectation describes one expected diagnostic.
// Empty fields are not checked.
type DiagnosticExpectation struct {
	Code     string `yaml:"code"`
	Type     string `yaml:"type,omitempty"`
	Member   string `yaml:"member,omitempty"`
	Contains string `yaml:"contains,omitempty"`
}

// LoadCase reads and parses a case YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}
	return ParseCase(data)
}

// ParseCase parses case YAML with strict field validation.
func ParseCase(data []byte) (*Case, error) {
	var c Case
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateCase(&c); err != nil {
		return nil, fmt.Errorf("invalid case: %w", err)
	}
	return &c, nil
}

// LoadCases loads every *.yaml case in dir, sorted by file name.
func LoadCases(dir string) ([]*Case, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	sort.Strings(paths)

	cases := make([]*Case, 0, len(paths))
	seen := make(map[string]string)
	for _, p := range paths {
		c, err := LoadCase(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		if prev, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("%s: case name %q already used by %s", filepath.Base(p), c.Name, prev)
		}
		seen[c.Name] = filepath.Base(p)
		cases = append(cases, c)
	}
	return cases, nil
}

// validateCase checks that required fields are present and consistent.
func validateCase(c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Description == "" {
		return fmt.Errorf("description is required")
	}
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.Expect.OK && len(c.Expect.Diagnostics) > 0 {
		return fmt.Errorf("expect: ok cases cannot list diagnostics")
	}
	if !c.Expect.OK && len(c.Expect.Diagnostics) == 0 {
		return fmt.Errorf("expect: failing cases must list their diagnostics")
	}
	for i, t := range c.Expect.Types {
		if t.Type == "" {
			return fmt.Errorf("expect.types[%d]: type is required", i)
		}
	}
	for i, d := range c.Expect.Diagnostics {
		if d.Code == "" {
			return fmt.Errorf("expect.diagnostics[%d]: code is required", i)
		}
	}
	return nil
}
