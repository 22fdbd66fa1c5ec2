// Package resolver decides whether a player interaction with a world
// target is allowed and applies its inventory and quest effects.
//
// Every call produces at most one quest transition, at most one
// consume/produce pair, and exactly one narrative message (except a
// declined dialogue, which produces none).
package resolver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jwebster45206/urea-quest/pkg/inventory"
	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

type Status int

const (
	StatusNoop     Status = iota // nothing happened
	StatusInfo                   // informational message only
	StatusRejected               // eligibility failed, nothing mutated
	StatusPrompt                 // a confirmation dialogue is waiting
	StatusApplied                // inventory and/or quest state changed
)

func (s Status) String() string {
	switch s {
	case StatusNoop:
		return "noop"
	case StatusInfo:
		return "info"
	case StatusRejected:
		return "rejected"
	case StatusPrompt:
		return "prompt"
	case StatusApplied:
		return "applied"
	}
	return "unknown"
}

type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoQuest       Reason = "no_active_quest"
	ReasonWrongState    Reason = "wrong_state"
	ReasonMissingItems  Reason = "missing_items"
	ReasonAlreadyHeld   Reason = "already_held"
	ReasonAlreadyActive Reason = "quest_already_active"
	ReasonQuestGated    Reason = "quest_not_started"
	ReasonOutOfOrder    Reason = "out_of_order"
	ReasonUnknownTarget Reason = "unknown_target"
	ReasonUnknownAction Reason = "unknown_action"
	ReasonQuestDone     Reason = "quest_completed"
)

// Result is the value a UI interprets after an interaction.
type Result struct {
	Status   Status
	Reason   Reason
	Message  narrative.Message
	TargetID string

	Advanced bool
	From     quest.State
	To       quest.State
	Consumed inventory.Requirements
	Produced []string

	StartedQuest bool
	StartTrivia  bool
}

type handler func(r *Resolver, t *world.Target) Result

// Resolver applies interactions against a quest machine and inventory.
type Resolver struct {
	def      *quest.Definition
	quests   *quest.Machine
	inv      *inventory.Inventory
	sink     world.Sink
	handlers map[world.Kind]handler
	npcs     map[string]npcRule
	logger   *slog.Logger
}

func New(quests *quest.Machine, inv *inventory.Inventory, sink world.Sink, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		def:    quests.Definition(),
		quests: quests,
		inv:    inv,
		sink:   sink,
		handlers: map[world.Kind]handler{
			world.KindNPC:         (*Resolver).interactNPC,
			world.KindSource:      (*Resolver).interactSource,
			world.KindResource:    (*Resolver).interactResource,
			world.KindStation:     (*Resolver).interactStation,
			world.KindPortal:      (*Resolver).interactPortal,
			world.KindWasteBucket: (*Resolver).interactWasteBucket,
		},
		npcs:   defaultNPCRules(),
		logger: logger,
	}
}

// Interact evaluates one interaction with t. A nil target is a no-op.
func (r *Resolver) Interact(t *world.Target) Result {
	if t == nil {
		return Result{Status: StatusNoop}
	}
	h, ok := r.handlers[t.Kind]
	if !ok {
		r.logger.Warn("No handler for target kind", "target", t.ID, "kind", t.Kind)
		return Result{
			Status:   StatusRejected,
			Reason:   ReasonUnknownTarget,
			TargetID: t.ID,
			Message:  narrative.Feedbackf("Nothing happens when you touch the %s.", t.Name),
		}
	}
	res := h(r, t)
	res.TargetID = t.ID
	r.log(t, res)
	return res
}

// Execute runs the continuation attached to a dialogue option the player
// picked. Eligibility is checked again, so a duplicated confirmation is
// rejected instead of applied twice.
func (r *Resolver) Execute(cmd narrative.Command, t *world.Target) Result {
	if cmd.Type == narrative.CmdClose {
		return Result{Status: StatusNoop, TargetID: cmd.TargetID}
	}
	if t == nil {
		return Result{
			Status:   StatusRejected,
			Reason:   ReasonUnknownTarget,
			TargetID: cmd.TargetID,
			Message:  narrative.Feedback("There is nobody here to answer."),
		}
	}

	var res Result
	switch cmd.Type {
	case narrative.CmdStartQuest:
		res = r.acceptQuest(t)
	case narrative.CmdConfirm:
		res = r.commitNPC(t)
	case narrative.CmdStartTrivia:
		res = r.beginTrivia(t)
	default:
		res = Result{
			Status:  StatusRejected,
			Reason:  ReasonUnknownAction,
			Message: narrative.Feedback("Nothing happens."),
		}
	}
	res.TargetID = t.ID
	r.log(t, res)
	return res
}

// advanceForward moves the quest to `to`, skipping collection goals the
// player has already met. It never moves the quest backward and makes at
// most one call into the machine.
func (r *Resolver) advanceForward(to quest.State) (quest.State, quest.State, bool) {
	cur, active := r.quests.Current()
	if !active || to == "" {
		return cur, cur, false
	}
	to = r.settle(to)
	if !cur.Before(to) {
		return cur, cur, false
	}
	if !r.quests.Advance(r.def.ID, to) {
		return cur, cur, false
	}
	return cur, to, true
}

// spawn places each produced item in front of origin, side by side.
func (r *Resolver) spawn(items []string, origin world.Vec3) {
	for i, item := range items {
		r.sink.SpawnItem(item, origin.Add(world.SpawnOffset(i, len(items))), world.ColorOf(item))
	}
}

func (r *Resolver) objectiveLine() string {
	if _, active := r.quests.Current(); !active && r.quests.Finished() {
		return "You've completed the urea cycle."
	}
	return "Current objective: " + r.quests.Objective()
}

func (r *Resolver) notNow(text string) Result {
	_, active := r.quests.Current()
	reason := ReasonWrongState
	if !active {
		reason = ReasonNoQuest
	}
	return Result{
		Status:  StatusRejected,
		Reason:  reason,
		Message: narrative.Feedbackf("%s %s", text, r.objectiveLine()),
	}
}

func (r *Resolver) missing(t *world.Target, prefix string) Result {
	return Result{
		Status:  StatusRejected,
		Reason:  ReasonMissingItems,
		Message: narrative.Feedbackf("%s You're missing %s.", prefix, r.inv.Missing(t.Requires)),
	}
}

// withNext appends the new objective when res moved the quest.
func (r *Resolver) withNext(text string, res Result) string {
	if !res.Advanced {
		return text
	}
	return fmt.Sprintf("%s Next: %s", text, r.def.Objective(res.To))
}

func (r *Resolver) log(t *world.Target, res Result) {
	attrs := []any{
		"target", t.ID,
		"kind", t.Kind.String(),
		"status", res.Status.String(),
	}
	if res.Reason != ReasonNone {
		attrs = append(attrs, "reason", string(res.Reason))
	}
	if res.Advanced {
		attrs = append(attrs, "from", res.From, "to", res.To)
	}
	if res.Status == StatusApplied {
		r.logger.Info("Interaction applied", attrs...)
		return
	}
	r.logger.Debug("Interaction resolved", attrs...)
}
