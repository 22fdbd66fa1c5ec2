package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

func main() {
	validator := &QuestValidator{}

	var err error
	if len(os.Args) < 2 {
		fmt.Println("No quest file given, validating the built-in quest...")
		err = validator.validateDefault()
	} else {
		err = validator.validateFile(os.Args[1])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Quest is valid!")
}

type QuestValidator struct {
	errors []string
}

func (v *QuestValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("quest file must have .yaml extension: %s", baseName)
	}
	if !isValidID(strings.TrimSuffix(baseName, ext)) {
		return fmt.Errorf("quest filename '%s' must be lowercase snake_case (e.g., urea_cycle.yaml)", baseName)
	}

	def, err := quest.LoadFile(filename, true)
	if err != nil {
		return fmt.Errorf("file %s failed strict YAML decoding: %w", filename, err)
	}
	return v.validate(def, filename)
}

func (v *QuestValidator) validateDefault() error {
	def, err := quest.Default()
	if err != nil {
		return err
	}
	return v.validate(def, "built-in quest")
}

func (v *QuestValidator) validate(def *quest.Definition, source string) error {
	v.errors = nil
	v.validateDefinition(def)
	v.validateCatalog(def, world.DefaultCatalog(nil))

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", source, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *QuestValidator) validateDefinition(def *quest.Definition) {
	v.validateIDFormat("quest ID", def.ID)
	if def.Name == "" {
		v.addError("quest has no name")
	}
	if def.Reward.Title == "" {
		v.addError("quest reward has no title")
	}
	for s, text := range def.Objectives {
		if strings.TrimSpace(text) == "" {
			v.addError(fmt.Sprintf("objective for %s is blank", s))
		}
	}
	for i, q := range def.Trivia {
		for j, a := range q.Answers {
			if strings.TrimSpace(a) == "" {
				v.addError(fmt.Sprintf("trivia question %d answer %d is blank", i+1, j+1))
			}
		}
	}
}

// validateCatalog checks that every state the world refers to exists in
// the quest.
func (v *QuestValidator) validateCatalog(def *quest.Definition, catalog *world.Catalog) {
	for _, t := range catalog.All() {
		v.validateIDFormat("target ID", t.ID)
		if t.RequiredState != "" && !def.Has(t.RequiredState) {
			v.addError(fmt.Sprintf("target %s requires unknown state %s", t.ID, t.RequiredState))
		}
		if t.AdvancesTo != "" && !def.Has(t.AdvancesTo) {
			v.addError(fmt.Sprintf("target %s advances to unknown state %s", t.ID, t.AdvancesTo))
		}
	}
}

func (v *QuestValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		v.addError(fieldName + " is empty")
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *QuestValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
