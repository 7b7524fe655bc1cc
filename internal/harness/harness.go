// Package harness drives output-comparison test suites: it expands the
// configured tests into an ordered invocation plan, runs the plan strictly
// sequentially, and aggregates exit statuses with first-failure-wins
// semantics.
package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/goldrun/goldrun/internal/config"
	"github.com/goldrun/goldrun/internal/output"
)

// Invocation is one execution of the output-test runner capability.
type Invocation struct {
	OutputLabel string   // Names the expected/actual fixture files
	Test        string   // Configured test name
	ExtraArgs   []string // Trailing arguments (the variant label, if any)
}

// Result records the outcome of a single invocation.
type Result struct {
	Invocation Invocation
	Status     int
	Err        error
	Duration   time.Duration
}

// OutputTester runs a single output-comparison test and reports its exit
// status. A non-zero status means the invocation failed; the error, when
// present, carries the human-readable reason.
type OutputTester interface {
	RunOutputTest(ctx context.Context, inv Invocation) (int, error)
}

// Aggregator accumulates invocation statuses. The first non-zero status
// freezes the aggregate: later statuses never overwrite it.
type Aggregator struct {
	status int
}

// Record feeds one invocation status into the aggregate.
func (a *Aggregator) Record(status int) {
	if a.status == 0 {
		a.status = status
	}
}

// Status returns the aggregated status: the first non-zero status
// recorded, or 0 if every invocation succeeded.
func (a *Aggregator) Status() int {
	return a.status
}

// BuildPlan expands tests into the ordered invocation sequence.
//
// A test without variants yields a single invocation under its own name.
// A test with variants yields one invocation per label in listed order,
// labeled "<name>_<label>" with the label appended as a trailing argument.
func BuildPlan(tests []config.TestConfig) []Invocation {
	var plan []Invocation
	for _, t := range tests {
		if len(t.Variants) == 0 {
			plan = append(plan, Invocation{
				OutputLabel: t.Name,
				Test:        t.Name,
			})
			continue
		}
		for _, label := range t.Variants {
			plan = append(plan, Invocation{
				OutputLabel: fmt.Sprintf("%s_%s", t.Name, label),
				Test:        t.Name,
				ExtraArgs:   []string{label},
			})
		}
	}
	return plan
}

// FilterPlan keeps only invocations whose test name is in names,
// preserving plan order. An empty names list keeps the full plan.
func FilterPlan(plan []Invocation, names []string) []Invocation {
	if len(names) == 0 {
		return plan
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}

	var filtered []Invocation
	for _, inv := range plan {
		if requested[inv.Test] {
			filtered = append(filtered, inv)
		}
	}
	return filtered
}

// Orchestrator runs an invocation plan against an OutputTester.
type Orchestrator struct {
	runner OutputTester
	out    *output.Writer
}

// New creates a new Orchestrator.
func New(runner OutputTester, out *output.Writer) *Orchestrator {
	return &Orchestrator{runner: runner, out: out}
}

// Run executes the plan strictly sequentially, in order, with no
// concurrency. A failing invocation does not abort the sequence: every
// invocation runs exactly once, and the returned status is the first
// non-zero status observed (0 if all passed).
func (o *Orchestrator) Run(ctx context.Context, plan []Invocation) ([]Result, int) {
	var agg Aggregator
	results := make([]Result, 0, len(plan))

	for _, inv := range plan {
		if ctx.Err() != nil {
			break
		}

		o.out.TestStart(inv.OutputLabel)

		start := time.Now()
		status, err := o.runner.RunOutputTest(ctx, inv)
		elapsed := time.Since(start)

		if status == 0 {
			o.out.TestPassed(inv.OutputLabel)
		} else {
			o.out.TestFailed(inv.OutputLabel, status, err)
		}

		results = append(results, Result{
			Invocation: inv,
			Status:     status,
			Err:        err,
			Duration:   elapsed,
		})
		agg.Record(status)
	}

	return results, agg.Status()
}
