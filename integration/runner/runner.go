package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/urea-quest/pkg/game"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/resolver"
	"github.com/jwebster45206/urea-quest/pkg/storage"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner plays scripted suites against an in-process game session backed
// by a real save store.
type Runner struct {
	Store             storage.Storage
	Definition        *quest.Definition
	Logger            func(format string, args ...any)
	Log               *slog.Logger
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner for the built-in quest.
func NewRunner(store storage.Storage) *Runner {
	return &Runner{
		Store:             store,
		Definition:        quest.MustDefault(),
		Logger:            func(string, ...any) {},
		Log:               slog.New(slog.NewTextHandler(io.Discard, nil)),
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a YAML file. Unknown keys are
// rejected so typos in expectations do not pass silently.
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var suite TestSuite
	if err := dec.Decode(&suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse YAML in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// play is the state carried between the steps of one suite.
type play struct {
	slot    uuid.UUID
	session *game.Session
	last    *resolver.Result
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
		Slot:    uuid.New(),
	}

	p := &play{slot: result.Slot}
	if err := r.reset(ctx, p); err != nil {
		result.Error = fmt.Errorf("failed to start session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, p, step)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	if err := r.Store.DeleteSnapshot(ctx, p.slot); err != nil {
		r.Log.Warn("Failed to delete test slot", "slot", p.slot, "error", err)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) runStep(ctx context.Context, p *play, step TestStep) TestResult {
	start := time.Now()
	res := TestResult{
		StepName: step.Name,
		IsReset:  step.Action == ActionReset,
	}
	if res.StepName == "" {
		res.StepName = strings.TrimSpace(step.Action + " " + step.Target)
	}

	p.last = nil
	times := max(step.Repeat, 1)
	var output []string
	for range times {
		if err := r.execute(ctx, p, step); err != nil {
			res.Error = err
			res.Duration = time.Since(start)
			return res
		}
		output = append(output, drainText(p.session)...)
	}
	res.Output = strings.Join(output, "\n")

	if err := checkExpectations(step.Expectations, p, res.Output); err != nil {
		res.Error = err
	} else {
		res.Success = true
	}
	res.Duration = time.Since(start)
	return res
}

// reset starts the slot over with a fresh session.
func (r *Runner) reset(ctx context.Context, p *play) error {
	if err := r.Store.DeleteSnapshot(ctx, p.slot); err != nil {
		return err
	}
	p.session = game.New(r.Definition, r.Log)
	return p.session.LoadFrom(ctx, r.Store, p.slot)
}

// reload saves the session and continues from a new session loaded from
// the store.
func (r *Runner) reload(ctx context.Context, p *play) error {
	if err := r.Store.SaveSnapshot(ctx, p.slot, p.session.Snapshot()); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	fresh := game.New(r.Definition, r.Log)
	if err := fresh.LoadFrom(ctx, r.Store, p.slot); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	p.session = fresh
	return nil
}

func checkExpectations(exp Expectations, p *play, output string) error {
	s := p.session
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	st, active := s.Quests.Current()
	if exp.State != nil && string(st) != *exp.State {
		fail("expected state %s, got %s", *exp.State, st)
	}
	if exp.Active != nil && active != *exp.Active {
		fail("expected active=%v, got %v", *exp.Active, active)
	}
	if exp.Inventory != nil {
		got := s.Inventory.Items()
		if !maps.Equal(got, exp.Inventory) {
			fail("expected inventory %v, got %v", exp.Inventory, got)
		}
	}
	for item, n := range exp.Holding {
		if got := s.Inventory.Count(item); got != n {
			fail("expected %d %s, holding %d", n, item, got)
		}
	}
	if exp.Area != nil {
		if _, area := s.World.Player(); area != *exp.Area {
			fail("expected area %s, got %s", *exp.Area, area)
		}
	}
	if exp.BarrierUp != nil && s.World.BarrierUp() != *exp.BarrierUp {
		fail("expected barrier_up=%v", *exp.BarrierUp)
	}
	if exp.Interacting != nil && s.Interacting() != *exp.Interacting {
		fail("expected interacting=%v", *exp.Interacting)
	}
	if exp.Status != nil || exp.Reason != nil {
		switch {
		case p.last == nil:
			fail("step produced no interaction result to check")
		default:
			if exp.Status != nil && p.last.Status.String() != *exp.Status {
				fail("expected status %s, got %s", *exp.Status, p.last.Status)
			}
			if exp.Reason != nil && string(p.last.Reason) != *exp.Reason {
				fail("expected reason %q, got %q", *exp.Reason, p.last.Reason)
			}
		}
	}
	for _, flag := range exp.Flags {
		if !s.Flag(flag) {
			fail("expected flag %s to be set", flag)
		}
	}
	if exp.TriviaCorrect != nil && s.Trivia.Correct() != *exp.TriviaCorrect {
		fail("expected %d correct answers, got %d", *exp.TriviaCorrect, s.Trivia.Correct())
	}
	for _, item := range exp.WorldHas {
		if _, ok := findLoose(s, item); !ok {
			fail("expected %s lying in the world", item)
		}
	}
	for _, want := range exp.OutputContains {
		if !strings.Contains(output, want) {
			fail("output missing %q in:\n%s", want, output)
		}
	}
	for _, unwanted := range exp.OutputLacks {
		if strings.Contains(output, unwanted) {
			fail("output unexpectedly contains %q", unwanted)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}
