// Package integration contains integration tests for goldrun.
package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goldrun/goldrun/internal/config"
	"github.com/goldrun/goldrun/internal/harness"
	"github.com/goldrun/goldrun/internal/output"
	"github.com/goldrun/goldrun/internal/runner"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
// The result is cached since runtime.Caller is relatively expensive.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

func loadFixtureSuite(t *testing.T, name string) (*config.Config, string) {
	t.Helper()

	root := filepath.Join(fixturesDir(), name)
	cfg, warnings, err := config.LoadAndValidate(filepath.Join(root, config.DefaultConfigFile))
	if err != nil {
		t.Fatalf("failed to load %s suite: %v", name, err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings for %s suite: %v", name, warnings)
	}
	return cfg, root
}

func quietWriter() *output.Writer {
	w := output.NewWithWriters(io.Discard, io.Discard, false)
	w.SetQuiet(true)
	return w
}

func TestRenderSuite_PlanShape(t *testing.T) {
	t.Parallel()

	cfg, _ := loadFixtureSuite(t, "render")

	if cfg.Suite != "render-output" {
		t.Errorf("suite name = %q, want %q", cfg.Suite, "render-output")
	}

	plan := harness.BuildPlan(cfg.Tests)
	var labels []string
	for _, inv := range plan {
		labels = append(labels, inv.OutputLabel)
	}
	want := []string{"test2", "test2Formatted_plain", "test2Formatted_spaced", "test2Formatted_pretty"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("plan labels mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSuite_AllInvocationsPass(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	cfg, root := loadFixtureSuite(t, "render")

	orch := harness.New(runner.NewExecTester(cfg, root), quietWriter())
	results, status := orch.Run(context.Background(), harness.BuildPlan(cfg.Tests))

	if status != 0 {
		for _, res := range results {
			if res.Err != nil {
				t.Logf("%s: %v", res.Invocation.OutputLabel, res.Err)
			}
		}
		t.Errorf("suite status = %d, want 0", status)
	}
	if len(results) != 4 {
		t.Errorf("got %d results, want 4", len(results))
	}
}

// The broken suite has a baseline that exits 3 and a spaced variant whose
// fixture deliberately differs from the command output. The aggregated
// status must be the baseline's 3, not the variant's mismatch status, and
// every invocation must still run.
func TestBrokenSuite_FirstFailureWins(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	// Run from a copy: the mismatching invocation writes an .actual file
	// beside its fixture, which must not land in the source tree.
	root := copyFixture(t, "broken")
	cfg, warnings, err := config.LoadAndValidate(filepath.Join(root, config.DefaultConfigFile))
	if err != nil {
		t.Fatalf("failed to load broken suite: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	orch := harness.New(runner.NewExecTester(cfg, root), quietWriter())
	results, status := orch.Run(context.Background(), harness.BuildPlan(cfg.Tests))

	if status != 3 {
		t.Errorf("suite status = %d, want 3", status)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}

	byLabel := make(map[string]int, len(results))
	for _, res := range results {
		byLabel[res.Invocation.OutputLabel] = res.Status
	}
	if byLabel["test2"] != 3 {
		t.Errorf("baseline status = %d, want 3", byLabel["test2"])
	}
	if byLabel["test2Formatted_spaced"] != 1 {
		t.Errorf("spaced variant status = %d, want 1 (output mismatch)", byLabel["test2Formatted_spaced"])
	}
	if byLabel["test2Formatted_plain"] != 0 || byLabel["test2Formatted_pretty"] != 0 {
		t.Error("matching variants should pass")
	}

	actualPath := filepath.Join(root, cfg.ExpectedDir, "test2Formatted_spaced"+config.ActualSuffix)
	if _, err := os.Stat(actualPath); err != nil {
		t.Errorf("mismatching invocation did not record actual output: %v", err)
	}
}

// copyFixture copies a fixture suite into a temp dir and returns the copy's root.
func copyFixture(t *testing.T, name string) string {
	t.Helper()

	src := filepath.Join(fixturesDir(), name)
	dst := t.TempDir()

	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	if err != nil {
		t.Fatalf("failed to copy fixture %s: %v", name, err)
	}
	return dst
}
