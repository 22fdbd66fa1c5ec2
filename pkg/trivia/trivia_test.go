package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/quest"
)

func newSession(t *testing.T) (*Session, []quest.Question) {
	t.Helper()
	questions := quest.MustDefault().Trivia
	require.Len(t, questions, quest.TriviaQuestionCount)
	return New(questions, nil), questions
}

func wrong(q quest.Question) int {
	return (q.Correct + 1) % len(q.Answers)
}

func TestSession_AllCorrectCompletes(t *testing.T) {
	s, questions := newSession(t)

	m := s.Start()
	assert.Equal(t, narrative.KindQuestion, m.Kind)
	assert.Contains(t, m.Text, "(1/6)")

	for i, q := range questions {
		ans := s.Submit(q.Correct)
		require.True(t, ans.Accepted, "question %d", i)
		assert.True(t, ans.Correct)
		if i == len(questions)-1 {
			assert.True(t, ans.Finished)
			break
		}
		assert.False(t, ans.Finished)
		assert.Equal(t, PhaseCooldown, s.Phase())

		next, ok := s.Continue()
		require.True(t, ok)
		assert.Equal(t, questions[i+1].Answers, next.Answers)
	}
	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.True(t, s.Success())
	assert.False(t, s.Running())
}

func TestSession_FiveCorrectThenWrongDoesNotComplete(t *testing.T) {
	s, questions := newSession(t)
	s.Start()

	for _, q := range questions[:5] {
		require.True(t, s.Submit(q.Correct).Correct)
		_, ok := s.Continue()
		require.True(t, ok)
	}

	ans := s.Submit(wrong(questions[5]))
	assert.True(t, ans.Accepted)
	assert.False(t, ans.Correct)
	assert.False(t, ans.Finished)
	assert.False(t, s.Success())
	assert.Equal(t, 5, s.Correct())
	assert.Equal(t, 5, s.Index())
	assert.True(t, s.Running())
}

func TestSession_WrongAnswerRetriesSameQuestion(t *testing.T) {
	s, questions := newSession(t)
	s.Start()

	for range 3 {
		ans := s.Submit(wrong(questions[0]))
		assert.False(t, ans.Correct)
		assert.Equal(t, 0, s.Index())
		assert.Equal(t, PhaseAsking, s.Phase())
	}
	assert.True(t, s.Submit(questions[0].Correct).Correct)
}

func TestSession_CooldownIgnoresSubmissions(t *testing.T) {
	s, questions := newSession(t)
	s.Start()

	require.True(t, s.Submit(questions[0].Correct).Correct)
	ans := s.Submit(questions[1].Correct)
	assert.False(t, ans.Accepted)
	assert.Equal(t, 1, s.Correct())
	assert.True(t, ans.Message.IsZero())
}

func TestSession_OutOfRangeAndIdleSubmissions(t *testing.T) {
	s, _ := newSession(t)

	assert.False(t, s.Submit(0).Accepted, "not started")
	_, ok := s.Continue()
	assert.False(t, ok)

	s.Start()
	assert.False(t, s.Submit(-1).Accepted)
	assert.False(t, s.Submit(99).Accepted)
}

func TestSession_RestartResetsScore(t *testing.T) {
	s, questions := newSession(t)
	s.Start()
	s.Submit(questions[0].Correct)
	s.Continue()
	s.Submit(questions[1].Correct)

	s.Abandon()
	assert.Equal(t, PhaseNotStarted, s.Phase())
	assert.False(t, s.Running())

	s.Start()
	assert.Zero(t, s.Correct())
	assert.Zero(t, s.Index())
}

func TestSession_EmptyBank(t *testing.T) {
	s := New(nil, nil)
	m := s.Start()
	assert.Equal(t, narrative.KindFeedback, m.Kind)
	assert.Equal(t, PhaseCompleted, s.Phase())
}
