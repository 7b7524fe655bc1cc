// Package config provides suite configuration loading and validation for goldrun.yaml.
package config

// Config represents a complete goldrun.yaml suite configuration.
type Config struct {
	Suite       string            `yaml:"suite"`
	Workdir     string            `yaml:"workdir,omitempty"`
	ExpectedDir string            `yaml:"expected_dir,omitempty"`
	Vars        map[string]string `yaml:"vars,omitempty"`
	Env         map[string]string `yaml:"env,omitempty"`
	Tests       []TestConfig      `yaml:"tests"`
}

// TestConfig defines a single output-comparison test.
//
// A test without variants produces one invocation under its own name.
// A test with variants produces one invocation per label, in listed order;
// each invocation appends the label as a trailing argument to the command
// and compares against the "<name>_<label>" expected file.
type TestConfig struct {
	Name     string   `yaml:"name"`
	Command  string   `yaml:"command"`
	Variants []string `yaml:"variants,omitempty"`
	Expected string   `yaml:"expected,omitempty"` // Override expected file path; ${label} is interpolated
}

// Test returns the test configuration with the given name.
func (c *Config) Test(name string) (TestConfig, bool) {
	for _, t := range c.Tests {
		if t.Name == name {
			return t, true
		}
	}
	return TestConfig{}, false
}

// TestNames returns the configured test names in declaration order.
func (c *Config) TestNames() []string {
	names := make([]string, 0, len(c.Tests))
	for _, t := range c.Tests {
		names = append(names, t.Name)
	}
	return names
}
