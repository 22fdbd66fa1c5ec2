package runner

import (
	"time"

	"github.com/google/uuid"
)

// Step actions understood by the runner.
const (
	ActionUse      = "use"      // interact, accept any offer, close what follows
	ActionInteract = "interact" // interact only; dialogues stay open
	ActionChoose   = "choose"   // pick dialogue option `option`
	ActionDecline  = "decline"
	ActionAnswer   = "answer" // trivia: `answer` is correct, wrong or an index
	ActionContinue = "continue"
	ActionAbandon  = "abandon"
	ActionTick     = "tick"
	ActionCommand  = "command" // session shortcut such as i, o or l
	ActionMoveTo   = "move_to" // stand next to `target`
	ActionNearest  = "nearest" // interact with whatever is in reach
	ActionReload   = "reload"  // save, then load into a fresh session
	ActionReset    = "reset"   // back to the suite's starting point
)

// TestSuite defines a complete scripted playthrough.
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name  string     `yaml:"name"`
	Steps []TestStep `yaml:"steps,omitempty"` // Used for regular tests
	Cases []string   `yaml:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one player action and its expected outcome.
type TestStep struct {
	Name         string       `yaml:"name,omitempty"`
	Action       string       `yaml:"action"`
	Target       string       `yaml:"target,omitempty"` // target id or loose item name
	Option       int          `yaml:"option,omitempty"`
	Answer       string       `yaml:"answer,omitempty"`
	Input        string       `yaml:"input,omitempty"`
	Repeat       int          `yaml:"repeat,omitempty"`
	Expectations Expectations `yaml:"expect,omitempty"`
}

// Expectations defines what to check after a step executes.
type Expectations struct {
	State          *string        `yaml:"state,omitempty"`
	Active         *bool          `yaml:"active,omitempty"`
	Inventory      map[string]int `yaml:"inventory,omitempty"` // exact contents
	Holding        map[string]int `yaml:"holding,omitempty"`   // subset
	Area           *string        `yaml:"area,omitempty"`
	BarrierUp      *bool          `yaml:"barrier_up,omitempty"`
	Interacting    *bool          `yaml:"interacting,omitempty"`
	Status         *string        `yaml:"status,omitempty"`
	Reason         *string        `yaml:"reason,omitempty"`
	Flags          []string       `yaml:"flags,omitempty"`
	TriviaCorrect  *int           `yaml:"trivia_correct,omitempty"`
	WorldHas       []string       `yaml:"world_has,omitempty"` // loose items by name
	OutputContains []string       `yaml:"output_contains,omitempty"`
	OutputLacks    []string       `yaml:"output_lacks,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	Output   string
	IsReset  bool // reset steps do not count toward pass/fail metrics
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Slot     uuid.UUID // save slot used for this run
}
