package config

// Default configuration values.
const (
	DefaultConfigFile  = "goldrun.yaml"
	DefaultWorkdir     = "."
	DefaultExpectedDir = "expected"

	// ExpectedSuffix is appended to output labels to form fixture file names.
	ExpectedSuffix = ".expected"
	// ActualSuffix is appended to output labels when a mismatching run is recorded.
	ActualSuffix = ".actual"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Workdir == "" {
		cfg.Workdir = DefaultWorkdir
	}
	if cfg.ExpectedDir == "" {
		cfg.ExpectedDir = DefaultExpectedDir
	}
}
