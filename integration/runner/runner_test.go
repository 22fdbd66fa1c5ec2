package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/urea-quest/pkg/storage"
)

func writeCase(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadTestSuiteWithExpansion(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "a.yaml", "name: first\nsteps:\n  - action: tick\n")
	writeCase(t, dir, "b.yaml", "name: second\nsteps:\n  - action: tick\n  - action: tick\n")
	seq := writeCase(t, dir, "all.yaml", "name: everything\ncases: [a.yaml, b.yaml]\n")

	jobs, err := LoadTestSuiteWithExpansion(seq, dir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "first", jobs[0].Name)
	assert.Len(t, jobs[1].Suite.Steps, 2)

	missing := writeCase(t, dir, "broken.yaml", "name: broken\ncases: [nope.yaml]\n")
	_, err = LoadTestSuiteWithExpansion(missing, dir)
	assert.ErrorContains(t, err, "nope.yaml")
}

func TestLoadTestSuite_RejectsUnknownKeys(t *testing.T) {
	path := writeCase(t, t.TempDir(), "typo.yaml", "name: typo\nsteps:\n  - action: tick\n    expct: {active: false}\n")
	_, err := LoadTestSuite(path)
	assert.Error(t, err)
}

func TestRunSuite_ReportsFailedExpectations(t *testing.T) {
	state := "COLLECT_CO2"
	suite := TestSuite{
		Name: "wrong expectation",
		Steps: []TestStep{
			{Action: ActionUse, Target: "hepa", Expectations: Expectations{State: &state}},
			{Action: ActionTick},
		},
	}

	r := NewRunner(storage.NewMockStorage())
	r.ErrorHandlingMode = ErrorHandlingExit
	result, err := r.RunSuite(context.Background(), suite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected state COLLECT_CO2, got GATHER_WATER")
	assert.Len(t, result.Results, 1, "exit mode stops at the first failure")
}

func TestRunSuite_UnknownActionAndTarget(t *testing.T) {
	r := NewRunner(storage.NewMockStorage())
	ctx := context.Background()

	_, err := r.RunSuite(ctx, TestSuite{Name: "bad action", Steps: []TestStep{{Action: "dance"}}})
	assert.ErrorContains(t, err, `unknown action "dance"`)

	_, err = r.RunSuite(ctx, TestSuite{Name: "bad target", Steps: []TestStep{{Action: ActionUse, Target: "ghost"}}})
	assert.ErrorContains(t, err, `no target or loose item "ghost"`)
}

func TestRunSuite_ReloadRoundTrip(t *testing.T) {
	state := "GATHER_WATER"
	active := true
	suite := TestSuite{
		Name: "reload",
		Steps: []TestStep{
			{Action: ActionUse, Target: "hepa"},
			{Action: ActionReload, Expectations: Expectations{
				State:          &state,
				Active:         &active,
				OutputContains: []string{"Welcome back!"},
			}},
		},
	}

	result, err := NewRunner(storage.NewMockStorage()).RunSuite(context.Background(), suite)
	require.NoError(t, err)
	assert.Len(t, result.Results, 2)
}
