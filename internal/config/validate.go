package config

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// dartIdentRe matches a Dart class identifier.
var dartIdentRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs field-level validation. Missing paths are not
// reported here because flags may still supply them.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if c.Input != "" {
		if ext := filepath.Ext(c.Input); ext != ".json" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("input: extension %q is unusual, only JSON documents are supported", ext))
		}
	}

	if c.Input != "" && c.Output != "" && filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		result.Errors = append(result.Errors, "output: must be a directory, not the input document")
	}

	if c.ServiceClass != "" && !dartIdentRe.MatchString(c.ServiceClass) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("serviceClass: %q is not a valid Dart class name", c.ServiceClass))
	}

	return result
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
