package resolver

import (
	"maps"
	"slices"

	"github.com/jwebster45206/urea-quest/pkg/inventory"
	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

// inRequiredState reports whether t may be used in the current quest state.
func (r *Resolver) inRequiredState(t *world.Target) bool {
	if t.AlwaysValid() {
		return true
	}
	state, active := r.quests.Current()
	return active && state == t.RequiredState
}

func (r *Resolver) interactSource(t *world.Target) Result {
	if !r.inRequiredState(t) {
		return r.notNow("The " + t.Name + " is still. It's not the right time.")
	}
	if r.inv.Has(t.Provides) {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonAlreadyHeld,
			Message: narrative.Feedbackf("You already carry %s.", t.Provides),
		}
	}

	state, _ := r.quests.Current()
	r.inv.Add(t.Provides, 1)
	res := Result{Status: StatusApplied, Produced: []string{t.Provides}}
	if to, ok := sourceAdvances[state]; ok {
		res.From, res.To, res.Advanced = r.advanceForward(to)
	}
	res.Message = narrative.Feedback(r.withNext("You drew "+t.Provides+" from the "+t.Name+".", res))
	return res
}

func (r *Resolver) interactResource(t *world.Target) Result {
	item := t.Item
	state, active := r.quests.Current()
	if world.QuestGatedItems[item] && (!active || state == quest.NotStarted) {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonQuestGated,
			Message: narrative.Feedbackf("The %s slips away. Talk to Professor Hepa first.", item),
		}
	}
	if guard, ok := pickupGuards[item]; ok {
		if text, blocked := guard(state, r.inv); blocked {
			return Result{Status: StatusRejected, Reason: ReasonOutOfOrder, Message: narrative.Feedback(text)}
		}
	}

	r.inv.Add(item, 1)
	r.sink.RemoveItem(t)
	res := Result{Status: StatusApplied, Produced: []string{item}}

	step, ok := lookupStep(item, state)
	if !ok {
		res.Message = narrative.Feedbackf("Collected %s.", item)
		return res
	}
	res.From, res.To, res.Advanced = r.advanceForward(step.to)
	text := step.text
	if res.Advanced && res.To != step.to {
		// settle skipped ahead; the scripted line no longer names the goal
		text = r.withNext(text, res)
	}
	res.Message = narrative.Feedback(text)
	return res
}

func (r *Resolver) interactStation(t *world.Target) Result {
	if !r.inRequiredState(t) {
		return r.notNow("The " + t.Name + " is dormant. It's not the right time.")
	}
	if !r.inv.HasRequired(t.Requires) {
		return r.missing(t, "The "+t.Name+" hums expectantly.")
	}

	consumed := maps.Clone(t.Requires)
	if !r.inv.Consume(t.Requires) {
		return r.missing(t, "The "+t.Name+" hums expectantly.")
	}
	r.spawn(t.Produces, t.Position)

	res := Result{Status: StatusApplied, Consumed: consumed, Produced: slices.Clone(t.Produces)}
	res.From, res.To, res.Advanced = r.advanceForward(t.AdvancesTo)
	res.Message = narrative.Feedback(r.withNext("The "+t.Name+" glows and produces "+joinItems(t.Produces)+".", res))
	return res
}

func (r *Resolver) interactPortal(t *world.Target) Result {
	if !r.inRequiredState(t) {
		return r.notNow("The " + t.Name + " is sealed. It's not the right time.")
	}
	if !r.inv.HasRequired(t.Requires) {
		return r.missing(t, "The "+t.Name+" only opens for the right cargo.")
	}

	consumed := maps.Clone(t.Requires)
	if !r.inv.Consume(t.Requires) {
		return r.missing(t, "The "+t.Name+" only opens for the right cargo.")
	}
	r.sink.RemoveBarrier()
	r.sink.RelocatePlayer(t.Destination, t.DestArea)
	r.spawn(t.Produces, t.Destination)

	res := Result{Status: StatusApplied, Consumed: consumed, Produced: slices.Clone(t.Produces)}
	res.From, res.To, res.Advanced = r.advanceForward(t.AdvancesTo)
	res.Message = narrative.Feedback(r.withNext("You pass through the "+t.Name+" into the "+t.DestArea+".", res))
	return res
}

// interactWasteBucket consumes the disposable item. Advancing is left to
// the pickup of the item it was paired with.
func (r *Resolver) interactWasteBucket(t *world.Target) Result {
	if !r.inRequiredState(t) {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonWrongState,
			Message: narrative.Feedbackf("The %s doesn't need anything right now.", t.Name),
		}
	}
	if !r.inv.Has(t.Disposes) {
		return Result{
			Status:  StatusRejected,
			Reason:  ReasonMissingItems,
			Message: narrative.Feedbackf("You have no %s to throw away.", t.Disposes),
		}
	}

	r.inv.Remove(t.Disposes, 1)
	return Result{
		Status:   StatusApplied,
		Consumed: inventory.Requirements{t.Disposes: 1},
		Message:  narrative.Feedbackf("The %s goes into the %s, off to the TCA cycle. Now pick up the arginine.", t.Disposes, t.Name),
	}
}

func joinItems(items []string) string {
	switch len(items) {
	case 0:
		return "nothing"
	case 1:
		return items[0]
	}
	out := items[0]
	for _, item := range items[1 : len(items)-1] {
		out += ", " + item
	}
	return out + " and " + items[len(items)-1]
}
