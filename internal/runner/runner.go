// Package runner executes output-comparison tests: it runs a configured
// shell command, captures stdout, and diffs it against an expected fixture.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/goldrun/goldrun/internal/config"
	goldrunerrors "github.com/goldrun/goldrun/internal/errors"
	"github.com/goldrun/goldrun/internal/harness"
	"github.com/goldrun/goldrun/internal/output"
)

// varPattern matches variable references in the format ${varname}.
var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// escapePlaceholder temporarily replaces escaped variable syntax ($${var})
// during interpolation so a literal ${var} survives. NUL bytes cannot
// appear in shell command strings or YAML scalars, so no collision with
// user values is possible.
const escapePlaceholder = "\x00ESCAPED\x00"

// ExecTester is the exec-backed OutputTester implementation.
type ExecTester struct {
	cfg  *config.Config
	root string // Directory containing the suite file; base for workdir and expected_dir
	out  *output.Writer
}

// NewExecTester creates an ExecTester for the given suite.
// root is the directory the suite file was loaded from.
func NewExecTester(cfg *config.Config, root string) *ExecTester {
	return &ExecTester{cfg: cfg, root: root}
}

// SetOutput attaches a writer for command echoing in verbose mode.
func (r *ExecTester) SetOutput(w *output.Writer) {
	r.out = w
}

// Statically assert the harness contract.
var _ harness.OutputTester = (*ExecTester)(nil)

// RunOutputTest runs one invocation: execute the test command with the
// variant label appended, capture stdout, and compare against the expected
// fixture. The returned status is the command's own exit status when the
// command fails, 1 on output mismatch, and the environment exit code when
// the command cannot run or the fixture is missing.
func (r *ExecTester) RunOutputTest(ctx context.Context, inv harness.Invocation) (int, error) {
	test, ok := r.cfg.Test(inv.Test)
	if !ok {
		return goldrunerrors.ExitEnvironmentError, goldrunerrors.NotFound("test", inv.Test)
	}

	cmdStr := r.interpolateVars(test.Command, inv)
	if len(inv.ExtraArgs) > 0 {
		cmdStr += " " + strings.Join(inv.ExtraArgs, " ")
	}
	if r.out != nil {
		r.out.Command(cmdStr)
	}

	stdout, status, err := r.executeShell(ctx, cmdStr)
	if err != nil {
		return goldrunerrors.ExitEnvironmentError,
			goldrunerrors.Environmentf("command could not be started: %s: %v", cmdStr, err)
	}
	if status != 0 {
		return status, goldrunerrors.InvocationError(inv.Test, inv.OutputLabel, "command failed: "+cmdStr)
	}

	expectedPath := r.expectedPath(test, inv)
	expected, readErr := os.ReadFile(expectedPath)
	if readErr != nil {
		return goldrunerrors.ExitEnvironmentError,
			goldrunerrors.Environmentf("expected output file not found: %s", expectedPath)
	}

	if ok, diff := Compare(string(expected), string(stdout)); !ok {
		actualPath := r.recordActual(expectedPath, inv, stdout)
		msg := "output mismatch"
		if actualPath != "" {
			msg += " (actual output written to " + actualPath + ")"
		}
		if diff != "" {
			msg += "\n" + diff
		}
		return goldrunerrors.ExitRuntimeError, goldrunerrors.InvocationError(inv.Test, inv.OutputLabel, msg)
	}

	return 0, nil
}

// executeShell runs cmdStr through the platform shell in the suite
// workdir with the suite env layered over the process env. Stdout is
// captured for comparison; stderr passes through to the terminal.
// The returned error is non-nil only when the command could not run at
// all; command failures surface through the status.
func (r *ExecTester) executeShell(ctx context.Context, cmdStr string) ([]byte, int, error) {
	var stdout bytes.Buffer

	cmd := buildShellCommand(ctx, cmdStr)
	cmd.Dir = r.suitePath(r.cfg.Workdir)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	// Environment variable precedence: suite env overrides inherited
	// process env for matching keys (later entries win).
	cmd.Env = os.Environ()
	for k, v := range r.cfg.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, 0, err
	}

	return stdout.Bytes(), 0, nil
}

// interpolateVars replaces ${var} with variable values.
// Escaping: $${var} becomes ${var} (literal).
//
// Built-in variables:
//   - ${test}: test name
//   - ${label}: variant label (empty for a baseline invocation)
//   - ${root}: directory containing the suite file
func (r *ExecTester) interpolateVars(cmdStr string, inv harness.Invocation) string {
	result := strings.ReplaceAll(cmdStr, "$${", escapePlaceholder)

	label := ""
	if len(inv.ExtraArgs) > 0 {
		label = inv.ExtraArgs[0]
	}

	vars := map[string]string{
		"test":  inv.Test,
		"label": label,
		"root":  r.root,
	}
	for k, v := range r.cfg.Vars {
		// Built-ins win over user vars; config validation warns about this.
		if _, reserved := vars[k]; !reserved {
			vars[k] = v
		}
	}

	result = varPattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		return match // Keep unmatched variables as-is
	})

	return strings.ReplaceAll(result, escapePlaceholder, "${")
}

// expectedPath resolves the expected fixture file for an invocation.
// A per-test expected override may reference ${label}; otherwise the
// fixture is <expected_dir>/<output label>.expected.
func (r *ExecTester) expectedPath(test config.TestConfig, inv harness.Invocation) string {
	if test.Expected != "" {
		return r.suitePath(r.interpolateVars(test.Expected, inv))
	}
	return filepath.Join(r.suitePath(r.cfg.ExpectedDir), inv.OutputLabel+config.ExpectedSuffix)
}

// suitePath resolves a configured path against the suite root.
// Absolute paths are used as-is.
func (r *ExecTester) suitePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.root, p)
}

// recordActual writes the captured output next to the expected fixture so
// a mismatch can be inspected (or promoted with a file rename). Returns
// the written path, or empty if the write failed; recording is best-effort
// and never masks the mismatch itself.
func (r *ExecTester) recordActual(expectedPath string, inv harness.Invocation, stdout []byte) string {
	actualPath := filepath.Join(filepath.Dir(expectedPath), inv.OutputLabel+config.ActualSuffix)
	if err := os.WriteFile(actualPath, stdout, 0o644); err != nil {
		return ""
	}
	return actualPath
}

// buildShellCommand creates the platform shell command.
func buildShellCommand(ctx context.Context, cmdStr string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", cmdStr)
	}
	return exec.CommandContext(ctx, "sh", "-c", cmdStr)
}
