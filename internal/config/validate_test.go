package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Suite:       "render-output",
		Workdir:     ".",
		ExpectedDir: "expected",
		Tests: []TestConfig{
			{Name: "test2", Command: "./render test2"},
			{Name: "test2Formatted", Command: "./render test2 --format", Variants: []string{"plain", "spaced", "pretty"}},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	warnings, err := Validate(validConfig())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Validate() warnings = %v, want none", warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "missing suite name",
			mutate:    func(c *Config) { c.Suite = "" },
			wantField: "suite",
		},
		{
			name:      "uppercase suite name",
			mutate:    func(c *Config) { c.Suite = "Render" },
			wantField: "suite",
		},
		{
			name:      "trailing hyphen in suite name",
			mutate:    func(c *Config) { c.Suite = "render-" },
			wantField: "suite",
		},
		{
			name:      "no tests",
			mutate:    func(c *Config) { c.Tests = nil },
			wantField: "tests",
		},
		{
			name:      "missing test name",
			mutate:    func(c *Config) { c.Tests[0].Name = "" },
			wantField: "tests[0].name",
		},
		{
			name:      "test name starting with digit",
			mutate:    func(c *Config) { c.Tests[0].Name = "2test" },
			wantField: "tests[0].name",
		},
		{
			name:      "test name with path separator",
			mutate:    func(c *Config) { c.Tests[0].Name = "a/b" },
			wantField: "tests[0].name",
		},
		{
			name:      "duplicate test name",
			mutate:    func(c *Config) { c.Tests[1].Name = c.Tests[0].Name },
			wantField: "tests[1].name",
		},
		{
			name:      "missing command",
			mutate:    func(c *Config) { c.Tests[0].Command = "" },
			wantField: "tests[0].command",
		},
		{
			name:      "invalid variant label",
			mutate:    func(c *Config) { c.Tests[1].Variants[0] = "pl ain" },
			wantField: "tests[1].variants[0]",
		},
		{
			name:      "duplicate variant label",
			mutate:    func(c *Config) { c.Tests[1].Variants[2] = "plain" },
			wantField: "tests[1].variants[2]",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			_, err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Validate() error = %q, want field %q", err, tt.wantField)
			}
		})
	}
}

func TestValidate_ReservedVarWarnings(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Vars = map[string]string{
		"test": "x",
		"bin":  "./render",
	}

	warnings, err := Validate(cfg)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("Validate() warnings = %v, want exactly one", warnings)
	}
	if !strings.Contains(warnings[0], "vars.test") {
		t.Errorf("warning = %q, want mention of vars.test", warnings[0])
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "tests[0].name", Message: "is required"}
	want := "tests[0].name: is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
