package integration

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	istorage "github.com/jwebster45206/urea-quest/internal/storage"
	"github.com/jwebster45206/urea-quest/integration/runner"
	"github.com/jwebster45206/urea-quest/pkg/storage"
)

var caseFlag = flag.String("case", "", "Name of test case to run (from integration/cases/)")
var errFlag = flag.String("err", "continue", "Error handling mode: 'continue' (run all steps) or 'exit' (stop on first failure)")
var backendFlag = flag.String("backend", "", "Only run against one backend: memory, redis or sqlite")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// backends opens every save store the walkthroughs run against.
func backends(t *testing.T) map[string]storage.Storage {
	t.Helper()
	stores := map[string]storage.Storage{
		"memory": storage.NewMockStorage(),
	}

	mr := miniredis.RunT(t)
	redisStore, err := istorage.NewRedisStorage("redis://"+mr.Addr(), quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisStore.Close() })
	stores["redis"] = redisStore

	sqliteStore, err := istorage.OpenSQLite(filepath.Join(t.TempDir(), "saves.db"), quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })
	stores["sqlite"] = sqliteStore

	if *backendFlag != "" {
		only, ok := stores[*backendFlag]
		if !ok {
			t.Fatalf("unknown backend %q", *backendFlag)
		}
		return map[string]storage.Storage{*backendFlag: only}
	}
	return stores
}

func TestIntegrationSuites(t *testing.T) {
	testFiles, err := discoverTestFiles("cases")
	if err != nil {
		t.Fatalf("Failed to discover test files: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No test files found in cases directory")
	}

	var jobs []runner.TestJob
	for _, file := range testFiles {
		expandedJobs, err := runner.LoadTestSuiteWithExpansion(file, "cases")
		if err != nil {
			t.Errorf("Failed to load test suite %s: %v", file, err)
			continue
		}
		jobs = append(jobs, expandedJobs...)
	}
	if len(jobs) == 0 {
		t.Fatal("No valid test suites loaded")
	}

	runJobs(t, jobs, runner.ErrorHandlingContinue)
}

// TestSingleSuite allows running individual test suites for debugging
// Supports multiple cases comma-separated: -case "case1,case2,case3"
func TestSingleSuite(t *testing.T) {
	if *caseFlag == "" {
		t.Skip("Skipping single suite test (use -case flag to run)")
	}
	if *errFlag != "exit" && *errFlag != "continue" {
		t.Fatalf("Invalid -err flag value: %s (must be 'exit' or 'continue')", *errFlag)
	}

	var jobs []runner.TestJob
	for _, caseName := range strings.Split(*caseFlag, ",") {
		caseName = strings.TrimSpace(caseName)
		if caseName == "" {
			continue
		}
		suiteFile := filepath.Join("cases", caseName)
		if !strings.HasSuffix(suiteFile, ".yaml") {
			suiteFile += ".yaml"
		}
		expanded, err := runner.LoadTestSuiteWithExpansion(suiteFile, "cases")
		if err != nil {
			t.Fatalf("Failed to load test suite %s: %v", suiteFile, err)
		}
		jobs = append(jobs, expanded...)
	}
	if len(jobs) == 0 {
		t.Fatalf("No valid test cases found in -case flag: %s", *caseFlag)
	}

	runJobs(t, jobs, runner.ErrorHandlingMode(*errFlag))
}

func runJobs(t *testing.T, jobs []runner.TestJob, mode runner.ErrorHandlingMode) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			testRunner := runner.NewRunner(store)
			testRunner.ErrorHandlingMode = mode
			testRunner.Logger = t.Logf

			for _, job := range jobs {
				t.Run(job.Name, func(t *testing.T) {
					result, err := testRunner.RunSuite(ctx, job.Suite)
					for _, step := range result.Results {
						switch {
						case step.IsReset:
							t.Logf("   ↻ %s (%v)", step.StepName, step.Duration)
						case step.Success:
							t.Logf("   ✓ %s (%v)", step.StepName, step.Duration)
						default:
							t.Errorf("   ✗ %s: %v", step.StepName, step.Error)
						}
					}
					if err != nil {
						t.Errorf("suite %s failed on slot %s: %v", job.Name, result.Slot, err)
					}
				})
			}
		})
	}
}

// discoverTestFiles finds every suite file in dir, sorted by name.
func discoverTestFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
