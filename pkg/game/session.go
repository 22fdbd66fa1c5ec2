// Package game owns one running playthrough: the inventory, the quest
// machine, the world, the resolver and the Reality River challenge.
package game

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jwebster45206/urea-quest/pkg/inventory"
	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/resolver"
	"github.com/jwebster45206/urea-quest/pkg/trivia"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

// Flags recorded on the session and carried in snapshots.
const (
	FlagQuestCompleted = "quest_completed"
	FlagRiverCrossed   = "river_crossed"
)

// Session is a single-player game. It is not safe for concurrent use;
// the front-end drives it from one loop.
type Session struct {
	ID uuid.UUID

	Inventory *inventory.Inventory
	Quests    *quest.Machine
	World     *world.Catalog
	Trivia    *trivia.Session

	def      *quest.Definition
	resolver *resolver.Resolver
	flags    map[string]bool

	// interacting blocks world interaction while a dialogue or the trivia
	// challenge is open.
	interacting bool
	dialogue    *narrative.Message
	speaker     *world.Target

	out    narrative.Sequence
	logger *slog.Logger
}

// New builds a session for def over the default world.
func New(def *quest.Definition, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		ID:        uuid.New(),
		Inventory: inventory.New(),
		Quests:    quest.NewMachine(def, logger),
		World:     world.DefaultCatalog(logger),
		Trivia:    trivia.New(def.Trivia, logger),
		def:       def,
		flags:     make(map[string]bool),
		logger:    logger,
	}
	s.resolver = resolver.New(s.Quests, s.Inventory, s.World, logger)
	s.Quests.Subscribe(s.onQuestEvent)
	return s
}

func (s *Session) Definition() *quest.Definition {
	return s.def
}

// Interacting reports whether world interaction is currently blocked.
func (s *Session) Interacting() bool {
	return s.interacting
}

// Dialogue returns the open dialogue, if any.
func (s *Session) Dialogue() (narrative.Message, bool) {
	if s.dialogue == nil {
		return narrative.Message{}, false
	}
	return *s.dialogue, true
}

// Next pops the next message for the UI.
func (s *Session) Next() (narrative.Message, bool) {
	return s.out.Next()
}

// Messages drains every pending message.
func (s *Session) Messages() []narrative.Message {
	return s.out.Drain()
}

// Flag reports a session flag.
func (s *Session) Flag(name string) bool {
	return s.flags[name]
}

// Interact resolves one interaction with t. It is a no-op while a dialogue
// or the trivia challenge is open. Targets no longer placed in the world,
// such as a resource already picked up, are rejected.
func (s *Session) Interact(t *world.Target) resolver.Result {
	if t == nil || s.interacting {
		return resolver.Result{Status: resolver.StatusNoop}
	}
	if placed, ok := s.World.Get(t.ID); !ok || placed != t {
		s.logger.Debug("Interaction with stale target", "target_id", t.ID)
		res := resolver.Result{
			Status:   resolver.StatusRejected,
			Reason:   resolver.ReasonUnknownTarget,
			TargetID: t.ID,
			Message:  narrative.Feedbackf("The %s is no longer here.", t.Name),
		}
		s.out.Push(res.Message)
		return res
	}
	res := s.resolver.Interact(t)
	s.present(res, t)
	return res
}

// InteractNearest interacts with whatever prox reports in reach.
func (s *Session) InteractNearest(prox world.Proximity) resolver.Result {
	if prox == nil {
		prox = s.World
	}
	return s.Interact(prox.NearestInteractiveObject())
}

// Choose picks option i of the open dialogue and runs its command.
func (s *Session) Choose(i int) resolver.Result {
	if s.dialogue == nil || i < 0 || i >= len(s.dialogue.Options) {
		return resolver.Result{Status: resolver.StatusNoop}
	}
	cmd := s.dialogue.Options[i].Command
	target := s.speaker
	if target == nil || (cmd.TargetID != "" && cmd.TargetID != target.ID) {
		target, _ = s.World.Get(cmd.TargetID)
	}
	s.closeDialogue()

	res := s.resolver.Execute(cmd, target)
	s.present(res, target)
	return res
}

// Decline closes the open dialogue without running any command.
func (s *Session) Decline() {
	if s.dialogue == nil {
		return
	}
	s.logger.Debug("Dialogue declined", "speaker", s.dialogue.Speaker)
	s.closeDialogue()
}

// Answer submits a trivia answer.
func (s *Session) Answer(i int) trivia.Answer {
	if !s.Trivia.Running() {
		return trivia.Answer{}
	}
	ans := s.Trivia.Submit(i)
	s.out.Push(ans.Message)
	if ans.Finished {
		s.EndTrivia(s.Trivia.Success())
	}
	return ans
}

// ContinueTrivia moves from the post-answer pause to the next question.
func (s *Session) ContinueTrivia() bool {
	msg, ok := s.Trivia.Continue()
	s.out.Push(msg)
	return ok
}

// AbandonTrivia walks away from the river. The quest stays where it was.
func (s *Session) AbandonTrivia() {
	if !s.Trivia.Running() {
		return
	}
	s.Trivia.Abandon()
	s.EndTrivia(false)
}

// EndTrivia unfreezes the world. On success the quest completes; on
// failure nothing is lost and Vera can be asked again.
func (s *Session) EndTrivia(success bool) {
	s.interacting = s.dialogue != nil
	if !success {
		s.out.Push(narrative.Feedback("The river will wait. Talk to Vera when you're ready to try again."))
		return
	}
	s.flags[FlagRiverCrossed] = true
	if !s.Quests.Advance(s.def.ID, quest.Completed) {
		s.logger.Warn("Trivia finished without an active quest to complete")
	}
}

// Tick runs once per frame.
func (s *Session) Tick() {
	s.Quests.Tick()
}

// present queues res's message and opens dialogues or the challenge.
func (s *Session) present(res resolver.Result, t *world.Target) {
	msg := res.Message
	if msg.Kind == narrative.KindDialogue {
		s.dialogue = &msg
		s.speaker = t
		s.interacting = true
	}
	s.out.Push(msg)

	if res.StartTrivia {
		s.interacting = true
		s.out.Push(s.Trivia.Start())
		if !s.Trivia.Running() {
			s.EndTrivia(s.Trivia.Success())
		}
	}
}

func (s *Session) closeDialogue() {
	s.dialogue = nil
	s.speaker = nil
	s.interacting = s.Trivia.Running()
}

func (s *Session) onQuestEvent(ev quest.Event) {
	switch ev.Type {
	case quest.EventCompleted:
		s.flags[FlagQuestCompleted] = true
		s.out.Push(narrative.Feedbackf("Quest complete: %s!", s.def.Name))
		if ev.Reward != nil {
			s.out.Push(narrative.Feedbackf("Reward: %s (+%d XP). %s", ev.Reward.Title, ev.Reward.XP, ev.Reward.Description))
		}
	case quest.EventCleared:
		s.logger.Debug("Quest cleared from session", "session_id", s.ID)
	}
}
