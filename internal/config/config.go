package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
)

// FileName is the config file looked up in the working directory.
const FileName = "apigen.config.json"

var (
	ErrMissingInput  = errors.New("input is required")
	ErrMissingOutput = errors.New("output is required")
)

// Config represents the apigen configuration.
type Config struct {
	// Input is the OpenAPI JSON document to read.
	Input string `json:"input"`
	// Output is the directory receiving the generated files. Created if absent.
	Output string `json:"output"`
	// ServiceClass names the generated service class. Derived from the input
	// file name when empty.
	ServiceClass string `json:"serviceClass,omitempty"`
	// Source is the path printed in the generated header. Defaults to Input.
	Source string `json:"source,omitempty"`
	// Strict turns tolerated irregularities into a failed run.
	Strict bool `json:"strict,omitempty"`
}

// DefaultConfig returns a config with no paths set.
func DefaultConfig() Config {
	return Config{}
}

// Load reads and parses an apigen config file. Relative input and output paths
// are resolved against the directory holding the config file. Field values are
// not validated here; callers merge flags first and then call Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config, json.RejectUnknownMembers(true)); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	dir := filepath.Dir(path)
	config.Input = resolve(dir, config.Input)
	config.Output = resolve(dir, config.Output)

	return &config, nil
}

// Discover returns the path of the config file in dir, or "" when there is none.
func Discover(dir string) string {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// Validate checks that the config can drive a generation run.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrMissingInput
	}
	if c.Output == "" {
		return ErrMissingOutput
	}
	if r := c.ValidateDetailed(); !r.IsValid() {
		return errors.New(r.Errors[0])
	}
	return nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
