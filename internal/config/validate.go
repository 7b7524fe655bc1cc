package config

import (
	"fmt"
	"regexp"
)

var (
	// Suite name: must start with a lowercase letter, may contain lowercase,
	// digits, hyphens. Hyphens must not be consecutive or trailing.
	suiteNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

	// Test names and variant labels become file name components
	// (<name>_<label>.expected), so the charset is restricted accordingly.
	testNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	labelPattern    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

// reservedVars are interpolation built-ins that user vars cannot override.
var reservedVars = map[string]bool{
	"test":  true,
	"label": true,
	"root":  true,
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateSuiteName(cfg.Suite); err != nil {
		return nil, err
	}

	if len(cfg.Tests) == 0 {
		return nil, &ValidationError{Field: "tests", Message: "at least one test is required"}
	}

	seen := make(map[string]bool, len(cfg.Tests))
	for i, test := range cfg.Tests {
		if err := validateTest(i, test); err != nil {
			return nil, err
		}
		if seen[test.Name] {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("tests[%d].name", i),
				Message: fmt.Sprintf("duplicate test name %q", test.Name),
			}
		}
		seen[test.Name] = true
	}

	for name := range cfg.Vars {
		if reservedVars[name] {
			warnings = append(warnings, fmt.Sprintf("vars.%s shadows a built-in variable and is ignored", name))
		}
	}

	return warnings, nil
}

func validateSuiteName(name string) error {
	if name == "" {
		return &ValidationError{Field: "suite", Message: "is required"}
	}
	if !suiteNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "suite",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, single hyphens)",
		}
	}
	return nil
}

func validateTest(index int, test TestConfig) error {
	field := func(name string) string {
		return fmt.Sprintf("tests[%d].%s", index, name)
	}

	if test.Name == "" {
		return &ValidationError{Field: field("name"), Message: "is required"}
	}
	if !testNamePattern.MatchString(test.Name) {
		return &ValidationError{
			Field:   field("name"),
			Message: "must match pattern ^[A-Za-z][A-Za-z0-9_-]*$ (used as an output file name)",
		}
	}

	if test.Command == "" {
		return &ValidationError{Field: field("command"), Message: "is required"}
	}

	seenLabels := make(map[string]bool, len(test.Variants))
	for j, label := range test.Variants {
		labelField := fmt.Sprintf("tests[%d].variants[%d]", index, j)
		if !labelPattern.MatchString(label) {
			return &ValidationError{
				Field:   labelField,
				Message: "must match pattern ^[A-Za-z0-9][A-Za-z0-9_-]*$ (used as an output file name)",
			}
		}
		if seenLabels[label] {
			return &ValidationError{
				Field:   labelField,
				Message: fmt.Sprintf("duplicate variant label %q", label),
			}
		}
		seenLabels[label] = true
	}

	return nil
}
