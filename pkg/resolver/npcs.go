package resolver

import (
	"maps"
	"slices"

	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

type npcRole int

const (
	roleGiver  npcRole = iota // hands out the quest
	roleGate                  // talks the player forward, may take items
	roleCraft                 // turns inputs into outputs
	roleTrivia                // opens the Reality River challenge
)

// npcRule is the hand-written behavior of one NPC. The catalog target
// still declares what the NPC requires, produces and advances to.
type npcRule struct {
	role    npcRole
	accepts []quest.State

	// output, when held in one of helped, means the NPC already did its
	// job and the quest can simply move on to skipTo.
	output string
	helped []quest.State
	skipTo quest.State

	later   string // shown outside the accepted states
	offer   string // confirmation prompt
	confirm string // label of the confirming option
	done    string // shown after the commit
	already string // shown when the output is already held
}

func defaultNPCRules() map[string]npcRule {
	return map[string]npcRule{
		world.NPCHepa: {
			role:  roleGiver,
			offer: "Welcome to the liver cell! Ammonia is piling up and it's toxic. Will you help me turn it into urea through the urea cycle?",
		},
		world.NPCNagi: {
			role:    roleGate,
			accepts: []quest.State{quest.TalkToNagi},
			later:   "I'm N-acetylglutamate. I wake Casper up, but only when you're carrying everything he needs.",
			offer:   "You've got ammonia, bicarbonate and two ATP. Shall I switch Casper on for you?",
			confirm: "Wake Casper",
			done:    "Casper is awake! Go talk to him.",
		},
		world.NPCCasper: {
			role:    roleCraft,
			accepts: []quest.State{quest.TalkToCasper},
			output:  world.ItemCarbamoylPhosphate,
			helped:  []quest.State{quest.TalkToCasper, quest.CollectCarbamoylPhosphate},
			skipTo:  quest.CollectOrnithine,
			later:   "Zzz... I'm carbamoyl phosphate synthetase I. Nagi has to wake me first.",
			offer:   "Give me ammonia, bicarbonate and two ATP and I'll make carbamoyl phosphate.",
			confirm: "Hand them over",
			done:    "Here's your carbamoyl phosphate! Pick it up.",
			already: "You're already carrying carbamoyl phosphate. Find some ornithine for Otis.",
		},
		world.NPCOtis: {
			role:    roleCraft,
			accepts: []quest.State{quest.CollectOrnithine, quest.TalkToOtis},
			output:  world.ItemCitrulline,
			helped:  []quest.State{quest.CollectOrnithine, quest.TalkToOtis, quest.CollectCitrulline},
			skipTo:  quest.EnterPortal,
			later:   "I'm ornithine transcarbamylase. Bring me carbamoyl phosphate and ornithine when you have them.",
			offer:   "Carbamoyl phosphate and ornithine! I can join them into citrulline.",
			confirm: "Make citrulline",
			done:    "Citrulline is ready. Pick it up and head for the ORNT1 portal.",
			already: "You already have citrulline. Take it through the ORNT1 portal.",
		},
		world.NPCAsha: {
			role:    roleCraft,
			accepts: []quest.State{quest.CollectAspartate, quest.CollectCytosolATP, quest.TalkToAsha},
			output:  world.ItemArgininosuccinate,
			helped:  []quest.State{quest.CollectAspartate, quest.CollectCytosolATP, quest.TalkToAsha, quest.CollectArgininosuccinate},
			skipTo:  quest.TalkToAslan,
			later:   "I'm argininosuccinate synthetase. I need citrulline, aspartate and ATP.",
			offer:   "Citrulline, aspartate and ATP. Shall I make argininosuccinate?",
			confirm: "Make argininosuccinate",
			done:    "Argininosuccinate is ready. Pick it up and take it to Aslan.",
			already: "You already have argininosuccinate. Aslan can split it.",
		},
		world.NPCAslan: {
			role:    roleCraft,
			accepts: []quest.State{quest.CollectArgininosuccinate, quest.TalkToAslan, quest.CollectFumarate},
			later:   "I'm argininosuccinate lyase. Bring me argininosuccinate and I'll split it.",
			offer:   "Argininosuccinate! I can split it into arginine and fumarate.",
			confirm: "Split it",
			done:    "Arginine and fumarate! Pick up the fumarate and throw it in the waste bucket first.",
		},
		world.NPCArgus: {
			role:    roleCraft,
			accepts: []quest.State{quest.GatherCytosolWater, quest.TalkToArgus},
			output:  world.ItemUrea,
			helped:  []quest.State{quest.GatherCytosolWater, quest.TalkToArgus, quest.CollectUrea},
			skipTo:  quest.CollectRecycledOrnithine,
			later:   "I'm arginase. I cut arginine with water, but it's not time yet.",
			offer:   "Arginine and water. Shall I release the urea?",
			confirm: "Release urea",
			done:    "Urea and ornithine! Pick them both up.",
			already: "You already have urea. Don't forget the ornithine.",
		},
		world.NPCRenny: {
			role:    roleGate,
			accepts: []quest.State{quest.CollectRecycledOrnithine, quest.DeliverUrea},
			later:   "I'm the kidney courier. Bring me urea when the cycle has made some.",
			offer:   "Is that urea? I'll carry it off to the kidneys.",
			confirm: "Deliver urea",
			done:    "Off it goes! Now return the ornithine to Orrin so the cycle can turn again.",
		},
		world.NPCOrrin: {
			role:    roleGate,
			accepts: []quest.State{quest.ReturnOrnithine},
			later:   "I'm ORNT1. I carry ornithine back into the mitochondria once the urea is out.",
			offer:   "That ornithine goes back into the mitochondria. Hand it over?",
			confirm: "Return ornithine",
			done:    "The cycle is complete! Vera at the Reality River has one last challenge.",
		},
		world.NPCVera: {
			role:    roleTrivia,
			accepts: []quest.State{quest.RiverChallenge},
			later:   "The Reality River only tests those who have turned the whole cycle.",
			offer:   "Answer six questions about the urea cycle, all correct in one go, and the river is yours.",
			confirm: "I'm ready",
		},
	}
}

func (r *Resolver) interactNPC(t *world.Target) Result {
	rule, ok := r.npcs[t.ID]
	if !ok {
		return Result{Status: StatusInfo, Message: narrative.Dialogue(t.Name, "Hello there!")}
	}
	if rule.role == roleGiver {
		return r.talkToGiver(t, rule)
	}

	state, active := r.quests.Current()
	if active && rule.output != "" && r.inv.Has(rule.output) && slices.Contains(rule.helped, state) {
		res := Result{Status: StatusInfo}
		res.From, res.To, res.Advanced = r.advanceForward(rule.skipTo)
		if res.Advanced {
			res.Status = StatusApplied
		}
		res.Message = narrative.Dialogue(t.Name, rule.already)
		return res
	}
	if res, ok := r.npcEligible(t, rule); !ok {
		return res
	}

	cmd := narrative.CmdConfirm
	if rule.role == roleTrivia {
		cmd = narrative.CmdStartTrivia
	}
	return Result{
		Status: StatusPrompt,
		Message: narrative.Dialogue(t.Name, rule.offer,
			narrative.Option{Text: rule.confirm, Command: narrative.Command{Type: cmd, TargetID: t.ID}},
			narrative.Option{Text: "Not yet"},
		),
	}
}

// npcEligible runs the shared state and inventory checks for a non-giver
// NPC. On failure it returns the rejection to show.
func (r *Resolver) npcEligible(t *world.Target, rule npcRule) (Result, bool) {
	state, active := r.quests.Current()
	if !active || !slices.Contains(rule.accepts, state) {
		reason := ReasonWrongState
		if !active {
			reason = ReasonNoQuest
		}
		return Result{
			Status:  StatusRejected,
			Reason:  reason,
			Message: narrative.Dialogue(t.Name, rule.later+" Come back later. "+r.objectiveLine()),
		}, false
	}
	if !r.inv.HasRequired(t.Requires) {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonMissingItems,
			Message: narrative.Dialogue(t.Name, "You're missing "+r.inv.Missing(t.Requires).String()+"."),
		}, false
	}
	return Result{}, true
}

func (r *Resolver) talkToGiver(t *world.Target, rule npcRule) Result {
	state, active := r.quests.Current()
	switch {
	case r.quests.Finished():
		reward := r.def.Reward
		return Result{
			Status: StatusInfo,
			Message: narrative.Dialogue(t.Name,
				"You did it! The ammonia is safely out as urea. You've earned the title "+reward.Title+"."),
		}
	case active && state != quest.NotStarted:
		return Result{
			Status:  StatusInfo,
			Message: narrative.Dialogue(t.Name, "Keep going, you're doing great. "+r.objectiveLine()),
		}
	}
	return Result{
		Status: StatusPrompt,
		Message: narrative.Dialogue(t.Name, rule.offer,
			narrative.Option{Text: "Accept quest", Command: narrative.Command{Type: narrative.CmdStartQuest, TargetID: t.ID}},
			narrative.Option{Text: "Not now"},
		),
	}
}

func (r *Resolver) acceptQuest(t *world.Target) Result {
	if rule, ok := r.npcs[t.ID]; !ok || rule.role != roleGiver {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonUnknownAction,
			Message: narrative.Feedbackf("%s has no quest to give.", t.Name),
		}
	}
	if r.quests.Finished() {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonQuestDone,
			Message: narrative.Feedback(r.objectiveLine()),
		}
	}
	if !r.quests.Start(r.def) {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonAlreadyActive,
			Message: narrative.Feedback("You're already on a quest. " + r.objectiveLine()),
		}
	}
	to, _ := r.quests.Current()
	return Result{
		Status:       StatusApplied,
		StartedQuest: true,
		Advanced:     true,
		From:         quest.NotStarted,
		To:           to,
		Message:      narrative.Feedbackf("Quest started: %s. %s", r.def.Name, r.objectiveLine()),
	}
}

// commitNPC applies a confirmed NPC offer. Eligibility is checked again
// so a stale or repeated confirmation cannot apply twice.
func (r *Resolver) commitNPC(t *world.Target) Result {
	rule, ok := r.npcs[t.ID]
	if !ok || (rule.role != roleGate && rule.role != roleCraft) {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonUnknownAction,
			Message: narrative.Feedbackf("%s has nothing to confirm.", t.Name),
		}
	}
	if res, ok := r.npcEligible(t, rule); !ok {
		return res
	}

	consumed := maps.Clone(t.Requires)
	if len(t.Requires) > 0 && !r.inv.Consume(t.Requires) {
		return r.missing(t, t.Name+" frowns.")
	}
	r.spawn(t.Produces, t.Position)

	res := Result{Status: StatusApplied, Consumed: consumed, Produced: slices.Clone(t.Produces)}
	res.From, res.To, res.Advanced = r.advanceForward(t.AdvancesTo)
	res.Message = narrative.Dialogue(t.Name, r.withNext(rule.done, res))
	return res
}

func (r *Resolver) beginTrivia(t *world.Target) Result {
	rule, ok := r.npcs[t.ID]
	if !ok || rule.role != roleTrivia {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonUnknownAction,
			Message: narrative.Feedbackf("%s has no challenge for you.", t.Name),
		}
	}
	if res, ok := r.npcEligible(t, rule); !ok {
		return res
	}
	return Result{
		Status:      StatusInfo,
		StartTrivia: true,
		Message:     narrative.Feedback("The Reality River stirs. Answer carefully!"),
	}
}
