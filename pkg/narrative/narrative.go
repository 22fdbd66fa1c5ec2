package narrative

import (
	"fmt"
	"time"
)

// Kind says how the UI should present a message.
type Kind string

const (
	KindDialogue Kind = "dialogue" // modal, may carry options
	KindFeedback Kind = "feedback" // transient toast
	KindQuestion Kind = "question" // trivia question with answers
)

const DefaultFeedbackDuration = 2500 * time.Millisecond

// CommandType is what the core should do when the player picks an option.
type CommandType string

const (
	CmdClose       CommandType = ""             // close the dialogue, no mutation
	CmdStartQuest  CommandType = "start_quest"  // accept the quest
	CmdConfirm     CommandType = "confirm"      // commit an NPC's offer
	CmdStartTrivia CommandType = "start_trivia" // begin the Reality River challenge
)

// Command is the value form of a dialogue continuation.
type Command struct {
	Type     CommandType `json:"type,omitempty"`
	TargetID string      `json:"target_id,omitempty"`
}

// Option is one choice offered in a dialogue.
type Option struct {
	Text    string  `json:"text"`
	Command Command `json:"command"`
}

// Message is one piece of output for the narrative/UI collaborator.
type Message struct {
	Kind     Kind          `json:"kind"`
	Speaker  string        `json:"speaker,omitempty"`
	Text     string        `json:"text"`
	Options  []Option      `json:"options,omitempty"`
	Answers  []string      `json:"answers,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Feedback builds a transient message.
func Feedback(text string) Message {
	return Message{Kind: KindFeedback, Text: text, Duration: DefaultFeedbackDuration}
}

// Feedbackf is Feedback with formatting.
func Feedbackf(format string, args ...any) Message {
	return Feedback(fmt.Sprintf(format, args...))
}

// Dialogue builds a modal message. A dialogue without options gets a
// single close option.
func Dialogue(speaker, text string, options ...Option) Message {
	if len(options) == 0 {
		options = []Option{{Text: "Goodbye"}}
	}
	return Message{Kind: KindDialogue, Speaker: speaker, Text: text, Options: options}
}

// Question builds a trivia question message.
func Question(text string, answers []string) Message {
	return Message{Kind: KindQuestion, Speaker: "Reality River", Text: text, Answers: answers}
}

// IsZero reports whether m carries nothing.
func (m Message) IsZero() bool {
	return m.Kind == "" && m.Text == ""
}

// Blocking reports whether the message pauses world interaction until the
// player responds.
func (m Message) Blocking() bool {
	return m.Kind == KindDialogue || m.Kind == KindQuestion
}
