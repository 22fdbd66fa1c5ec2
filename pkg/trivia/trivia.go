// Package trivia runs the Reality River challenge: a fixed bank of
// questions that must all be answered correctly in one sitting.
package trivia

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/quest"
)

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseAsking           // waiting for an answer
	PhaseCooldown         // answer input disabled after a correct answer
	PhaseCompleted        // every question answered correctly
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseAsking:
		return "asking"
	case PhaseCooldown:
		return "cooldown"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// DefaultCooldown is how long the UI keeps answers disabled after a
// correct answer before calling Continue.
const DefaultCooldown = 1500 * time.Millisecond

// Answer is the outcome of one submission.
type Answer struct {
	Accepted bool // false when the submission was ignored
	Correct  bool
	Finished bool // the last question was answered correctly
	Message  narrative.Message
}

type Session struct {
	questions []quest.Question
	index     int
	correct   int
	phase     Phase
	logger    *slog.Logger
}

func New(questions []quest.Question, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{questions: questions, logger: logger}
}

// Start resets the score and returns the first question. Restarting
// mid-session throws away all progress.
func (s *Session) Start() narrative.Message {
	s.index = 0
	s.correct = 0
	if len(s.questions) == 0 {
		s.phase = PhaseCompleted
		return narrative.Feedback("The river is calm. There is nothing to answer.")
	}
	s.phase = PhaseAsking
	s.logger.Info("Trivia started", "questions", len(s.questions))
	return s.question()
}

// Submit checks answer against the current question. Wrong answers can be
// retried without limit.
func (s *Session) Submit(answer int) Answer {
	if s.phase != PhaseAsking {
		s.logger.Debug("Trivia answer ignored", "phase", s.phase.String())
		return Answer{}
	}
	q := s.questions[s.index]
	if answer < 0 || answer >= len(q.Answers) {
		return Answer{}
	}

	if answer != q.Correct {
		s.logger.Debug("Trivia answer incorrect", "question", s.index, "answer", answer)
		return Answer{
			Accepted: true,
			Message:  narrative.Feedback("Not quite. The river ripples... try again!"),
		}
	}

	s.correct++
	s.index++
	text := "Correct!"
	if q.Explanation != "" {
		text += " " + q.Explanation
	}
	if s.index == len(s.questions) {
		s.phase = PhaseCompleted
		s.logger.Info("Trivia completed", "correct", s.correct)
		return Answer{
			Accepted: true,
			Correct:  true,
			Finished: true,
			Message:  narrative.Feedback(text + " You've crossed the Reality River!"),
		}
	}
	s.phase = PhaseCooldown
	return Answer{Accepted: true, Correct: true, Message: narrative.Feedback(text)}
}

// Continue leaves the cooldown and returns the next question.
func (s *Session) Continue() (narrative.Message, bool) {
	if s.phase != PhaseCooldown {
		return narrative.Message{}, false
	}
	s.phase = PhaseAsking
	return s.question(), true
}

// Abandon stops the session. Progress is discarded.
func (s *Session) Abandon() {
	if s.phase == PhaseAsking || s.phase == PhaseCooldown {
		s.logger.Info("Trivia abandoned", "question", s.index, "correct", s.correct)
	}
	s.phase = PhaseNotStarted
	s.index = 0
	s.correct = 0
}

// Running reports whether the challenge is in progress.
func (s *Session) Running() bool {
	return s.phase == PhaseAsking || s.phase == PhaseCooldown
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Index() int { return s.index }

func (s *Session) Correct() int { return s.correct }

func (s *Session) Total() int { return len(s.questions) }

// Success reports whether every question was answered in this session.
func (s *Session) Success() bool {
	return s.phase == PhaseCompleted && s.correct == len(s.questions)
}

func (s *Session) question() narrative.Message {
	q := s.questions[s.index]
	return narrative.Question(fmt.Sprintf("(%d/%d) %s", s.index+1, len(s.questions), q.Text), q.Answers)
}
