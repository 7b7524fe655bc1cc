// Package cli provides command-line interface functionality for goldrun.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/goldrun/goldrun/internal/config"
	"github.com/goldrun/goldrun/internal/errors"
	"github.com/goldrun/goldrun/internal/output"
)

// Version is set at build time.
var Version = "dev"

// ConfigEnvVar overrides the default suite file location.
const ConfigEnvVar = "GOLDRUN_CONFIG"

var out = output.New()

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		fmt.Printf("goldrun %s\n", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbose)

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "run":
		return cmdRun(cmdArgs, opts)
	case "list":
		return cmdList(cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs, opts)
	default:
		// Unified handling: an unrecognized first arg is a test name,
		// so "goldrun test2Formatted" runs that test.
		return cmdRun(remaining, opts)
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	ConfigPath string
}

// SuiteFile resolves the suite file path: --config flag, then the
// GOLDRUN_CONFIG environment variable, then goldrun.yaml.
func (o *GlobalOptions) SuiteFile() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env
	}
	return config.DefaultConfigFile
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of the stdlib flag package because flags
// may appear anywhere in the argument list and arguments after -- must be
// preserved verbatim for test name matching.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "-c" || arg == "--config":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			opts.ConfigPath = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			i++
		case arg == "--":
			remaining = append(remaining, args[i+1:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if opts.Quiet && opts.Verbose {
		return nil, nil, fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	return opts, remaining, nil
}

func printUsage() {
	w := output.New()

	w.HelpTitle("goldrun - golden-output test harness")

	w.HelpSection("Usage:")
	w.HelpUsage("goldrun run [test...]   Run the configured suite (or only the named tests)")
	w.HelpUsage("goldrun <test> [test...]   Shorthand: run the named tests")
	w.HelpUsage("goldrun <command> [args]")

	w.HelpSection("Commands:")
	w.HelpCommand("run [test...]", "Run output-comparison tests, exit with the first failure's status", 15)
	w.HelpCommand("list", "List configured tests and their variants", 15)
	w.HelpCommand("config validate", "Validate the suite file", 15)
	w.HelpCommand("version", "Show version information", 15)

	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", 18)
	w.HelpFlag("-v, --verbose", "Echo each command before it runs", 18)
	w.HelpFlag("-c, --config <path>", "Suite file (default goldrun.yaml)", 18)
	w.HelpFlag("-h, --help", "Show this help", 18)
	w.HelpFlag("--version", "Show version", 18)

	w.HelpSection("Environment:")
	w.HelpEnvVar(ConfigEnvVar, "Suite file override", 15)

	w.HelpSection("Examples:")
	w.HelpExample("goldrun run", "Run every configured test")
	w.HelpExample("goldrun run test2Formatted", "Run one test with all its variants")
	w.HelpExample("goldrun -c suites/render.yaml run", "Run a specific suite file")
	w.Println("")
}
