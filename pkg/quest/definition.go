package quest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed data/urea_cycle.yaml
var defaultDefinition []byte

// TriviaQuestionCount is the size of the Reality River question bank.
const TriviaQuestionCount = 6

var ErrDefinitionMismatch = errors.New("quest definition mismatch")

// Reward is shown when the quest completes.
type Reward struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	XP          int    `yaml:"xp" json:"xp"`
}

// Question is one Reality River trivia question.
type Question struct {
	Text        string   `yaml:"text"`
	Answers     []string `yaml:"answers"`
	Correct     int      `yaml:"correct"`               // index into Answers
	Explanation string   `yaml:"explanation,omitempty"` // shown after a correct answer
}

// Definition is the static quest table. It is loaded once and never mutated.
type Definition struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	FirstState  State            `yaml:"first_state"`
	States      []State          `yaml:"states"`
	Objectives  map[State]string `yaml:"objectives"`
	Reward      Reward           `yaml:"reward"`
	Trivia      []Question       `yaml:"trivia"`
}

// Default returns the embedded urea cycle definition.
func Default() (*Definition, error) {
	return Parse(defaultDefinition, false)
}

// MustDefault is Default for package-level setup and tests.
func MustDefault() *Definition {
	def, err := Default()
	if err != nil {
		panic(err)
	}
	return def
}

// LoadFile reads a definition from a YAML file.
func LoadFile(path string, strict bool) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest file: %w", err)
	}
	def, err := Parse(raw, strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a YAML definition. In strict mode unknown
// fields are rejected.
func Parse(raw []byte, strict bool) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(strict)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode quest definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the definition against the state enumeration.
func (d *Definition) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("quest id is required"))
	}
	if len(d.States) == 0 {
		errs = append(errs, errors.New("quest has no states"))
	}
	for _, s := range d.States {
		if !s.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownState, s))
		}
		if _, ok := d.Objectives[s]; !ok {
			errs = append(errs, fmt.Errorf("state %s has no objective", s))
		}
	}
	for s := range d.Objectives {
		if !d.Has(s) {
			errs = append(errs, fmt.Errorf("objective for undeclared state %s", s))
		}
	}
	if !d.Has(d.FirstState) || d.FirstState == NotStarted {
		errs = append(errs, fmt.Errorf("first_state %q must be a declared gather state", d.FirstState))
	}
	if !d.Has(Completed) {
		errs = append(errs, fmt.Errorf("quest must declare %s", Completed))
	}
	if len(d.Trivia) != TriviaQuestionCount {
		errs = append(errs, fmt.Errorf("trivia bank has %d questions, want %d", len(d.Trivia), TriviaQuestionCount))
	}
	for i, q := range d.Trivia {
		if q.Text == "" {
			errs = append(errs, fmt.Errorf("trivia question %d has no text", i))
		}
		if len(q.Answers) < 2 {
			errs = append(errs, fmt.Errorf("trivia question %d needs at least two answers", i))
		}
		if q.Correct < 0 || q.Correct >= len(q.Answers) {
			errs = append(errs, fmt.Errorf("trivia question %d: correct index %d out of range", i, q.Correct))
		}
	}
	return errors.Join(errs...)
}

// Has reports whether s is declared by this definition.
func (d *Definition) Has(s State) bool {
	return slices.Contains(d.States, s)
}

// Objective returns the player-facing objective text for s.
func (d *Definition) Objective(s State) string {
	if text, ok := d.Objectives[s]; ok {
		return text
	}
	return "Explore the cell."
}
