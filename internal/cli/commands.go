package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goldrun/goldrun/internal/config"
	"github.com/goldrun/goldrun/internal/errors"
	"github.com/goldrun/goldrun/internal/harness"
	"github.com/goldrun/goldrun/internal/runner"
)

// cmdRun loads the suite, builds the invocation plan, runs it
// sequentially, and returns the aggregated status: the exit status of the
// first failing invocation, or 0 if all passed.
func cmdRun(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printRunUsage()
		return 0
	}

	cfg, root, code := loadSuite(opts)
	if cfg == nil {
		return code
	}

	// Positional args name tests to run; the plan keeps configured order.
	for _, name := range args {
		if _, ok := cfg.Test(name); !ok {
			err := errors.NotFound("test", name)
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
	}

	plan := harness.FilterPlan(harness.BuildPlan(cfg.Tests), args)
	if len(plan) == 0 {
		out.Warning("nothing to run")
		return 0
	}

	out.Info("%s: %d invocations", cfg.Suite, len(plan))

	tester := runner.NewExecTester(cfg, root)
	tester.SetOutput(out)
	orch := harness.New(tester, out)
	results, status := orch.Run(context.Background(), plan)

	printRunSummary(cfg.Suite, results)
	return status
}

// cmdList prints the configured tests and their variants.
func cmdList(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		out.HelpTitle("goldrun list - list configured tests")
		out.HelpSection("Usage:")
		out.HelpUsage("goldrun list")
		out.Println("")
		return 0
	}

	cfg, _, code := loadSuite(opts)
	if cfg == nil {
		return code
	}

	titleCase := cases.Title(language.English)

	out.Section(cfg.Suite)
	maxNameLen := 0
	for _, t := range cfg.Tests {
		if len(t.Name) > maxNameLen {
			maxNameLen = len(t.Name)
		}
	}
	for _, t := range cfg.Tests {
		desc := "1 invocation"
		if len(t.Variants) > 0 {
			titled := make([]string, len(t.Variants))
			for i, label := range t.Variants {
				titled[i] = titleCase.String(label)
			}
			desc = fmt.Sprintf("%d invocations: %s", len(t.Variants), strings.Join(titled, ", "))
		}
		out.HelpCommand(t.Name, desc, maxNameLen)
	}
	out.Println("")
	return 0
}

// cmdConfig handles config subcommands.
func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 || wantsHelp(args) {
		out.HelpTitle("goldrun config - suite file utilities")
		out.HelpSection("Usage:")
		out.HelpUsage("goldrun config validate")
		out.Println("")
		if len(args) == 0 {
			return errors.ExitConfigError
		}
		return 0
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate(opts)
	default:
		out.ErrorPrefix("unknown config subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(opts *GlobalOptions) int {
	path := opts.SuiteFile()
	_, warnings, err := config.LoadAndValidate(path)
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	out.ValidationSuccess("%s is valid", path)
	return 0
}

// loadSuite loads and validates the suite file, reporting problems on
// stderr. On failure the returned config is nil and the exit code is set.
func loadSuite(opts *GlobalOptions) (*config.Config, string, int) {
	path := opts.SuiteFile()
	cfg, warnings, err := config.LoadAndValidate(path)
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, "", errors.ExitConfigError
	}
	return cfg, filepath.Dir(path), 0
}

func printRunSummary(suite string, results []harness.Result) {
	passed, failed := 0, 0
	for _, res := range results {
		if res.Status == 0 {
			passed++
		} else {
			failed++
		}
	}

	out.SummaryHeader(suite)
	for _, res := range results {
		detail := res.Duration.Round(time.Millisecond).String()
		if res.Status != 0 {
			detail = fmt.Sprintf("exit %d", res.Status)
		}
		out.SummaryAction(res.Invocation.OutputLabel, res.Status == 0, detail)
	}
	out.Println("")
	out.SummaryPassed("Passed", fmt.Sprintf("%d", passed))
	if failed > 0 {
		out.SummaryFailed("Failed", fmt.Sprintf("%d", failed))
	}
	out.SummaryItem("Total", fmt.Sprintf("%d", len(results)))

	if failed == 0 {
		out.FinalSuccess("All %d invocations passed.", len(results))
	} else {
		out.FinalFailure("%d of %d invocations failed.", failed, len(results))
	}
}

func printRunUsage() {
	out.HelpTitle("goldrun run - run output-comparison tests")
	out.HelpSection("Usage:")
	out.HelpUsage("goldrun run [test...]")
	out.HelpSection("Description:")
	out.Println("  Runs the configured tests strictly in order. A test with variants")
	out.Println("  runs once per variant label, with the label appended to its command")
	out.Println("  and compared against the <name>_<label> expected file. Failures do")
	out.Println("  not stop the sequence; the exit code is the status of the first")
	out.Println("  failing invocation.")
	out.HelpSection("Examples:")
	out.HelpExample("goldrun run", "Run every configured test")
	out.HelpExample("goldrun run test2", "Run only the baseline test")
	out.Println("")
}

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}
