package resolver

import (
	"github.com/jwebster45206/urea-quest/pkg/inventory"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

// collectGoal is met once the player holds count of item; the quest then
// moves on to next.
type collectGoal struct {
	item  string
	count int
	next  quest.State
}

var collectGoals = map[quest.State]collectGoal{
	quest.GatherWater:               {world.ItemWater, 1, quest.CollectCO2},
	quest.CollectCO2:                {world.ItemCO2, 1, quest.MakeBicarbonate},
	quest.CollectBicarbonate:        {world.ItemBicarbonate, 1, quest.CollectAmmonia},
	quest.CollectAmmonia:            {world.ItemAmmonia, 1, quest.CollectATPFirst},
	quest.CollectATPFirst:           {world.ItemATP, 1, quest.CollectATPSecond},
	quest.CollectATPSecond:          {world.ItemATP, 2, quest.TalkToNagi},
	quest.CollectCarbamoylPhosphate: {world.ItemCarbamoylPhosphate, 1, quest.CollectOrnithine},
	quest.CollectOrnithine:          {world.ItemOrnithine, 1, quest.TalkToOtis},
	quest.CollectCitrulline:         {world.ItemCitrulline, 1, quest.EnterPortal},
	quest.CollectCytosolCitrulline:  {world.ItemCitrulline, 1, quest.CollectAspartate},
	quest.CollectAspartate:          {world.ItemAspartate, 1, quest.CollectCytosolATP},
	quest.CollectCytosolATP:         {world.ItemATP, 1, quest.TalkToAsha},
	quest.CollectArgininosuccinate:  {world.ItemArgininosuccinate, 1, quest.TalkToAslan},
	quest.CollectFumarate:           {world.ItemFumarate, 1, quest.DisposeFumarate},
	quest.GatherCytosolWater:        {world.ItemWater, 1, quest.TalkToArgus},
	quest.CollectUrea:               {world.ItemUrea, 1, quest.CollectRecycledOrnithine},
	quest.CollectRecycledOrnithine:  {world.ItemOrnithine, 1, quest.DeliverUrea},
}

// settle skips past collection goals the inventory already satisfies, so
// an item picked up early never leaves the player waiting for a pickup
// that can no longer happen.
func (r *Resolver) settle(to quest.State) quest.State {
	for range len(collectGoals) {
		goal, ok := collectGoals[to]
		if !ok || r.inv.Count(goal.item) < goal.count {
			return to
		}
		to = goal.next
	}
	return to
}

// resourceStep is one row of the pickup table: collecting item while the
// quest is in `when` advances to `to` and shows `text`.
type resourceStep struct {
	when quest.State
	to   quest.State
	text string
}

// resourceSteps is keyed by item name. The same item can drive different
// transitions depending on the current state.
var resourceSteps = map[string][]resourceStep{
	world.ItemCO2: {
		{quest.CollectCO2, quest.MakeBicarbonate, "CO2 collected! Bring it with your water to the Carbonic Shrine."},
	},
	world.ItemBicarbonate: {
		{quest.CollectBicarbonate, quest.CollectAmmonia, "Bicarbonate in hand. Now find some ammonia."},
	},
	world.ItemAmmonia: {
		{quest.CollectAmmonia, quest.CollectATPFirst, "Ammonia collected. It's toxic, so let's get it processed! Casper will need two ATP."},
	},
	world.ItemATP: {
		{quest.CollectATPFirst, quest.CollectATPSecond, "First ATP collected, you need one more."},
		{quest.CollectATPSecond, quest.TalkToNagi, "Second ATP collected! Nagi can wake Casper up."},
		{quest.CollectCytosolATP, quest.TalkToAsha, "ATP collected. Asha has everything she needs now."},
	},
	world.ItemCarbamoylPhosphate: {
		{quest.CollectCarbamoylPhosphate, quest.CollectOrnithine, "Carbamoyl phosphate collected! Otis will need ornithine as well."},
	},
	world.ItemOrnithine: {
		{quest.CollectOrnithine, quest.TalkToOtis, "Ornithine collected. Take it to Otis."},
		{quest.CollectUrea, "", "Ornithine collected. Don't leave the urea behind!"},
		{quest.CollectRecycledOrnithine, quest.DeliverUrea, "Ornithine recovered! Renny is waiting for the urea."},
	},
	world.ItemCitrulline: {
		{quest.CollectCitrulline, quest.EnterPortal, "Citrulline collected! It has to leave the mitochondria through ORNT1."},
		{quest.CollectCytosolCitrulline, quest.CollectAspartate, "Citrulline made it to the cytosol. Asha will also need aspartate."},
	},
	world.ItemAspartate: {
		{quest.CollectAspartate, quest.CollectCytosolATP, "Aspartate collected. It brings the second nitrogen."},
	},
	world.ItemArgininosuccinate: {
		{quest.CollectArgininosuccinate, quest.TalkToAslan, "Argininosuccinate collected! Aslan can split it."},
	},
	world.ItemFumarate: {
		{quest.CollectFumarate, quest.DisposeFumarate, "Fumarate collected. It belongs in the waste bucket."},
	},
	world.ItemArginine: {
		{quest.DisposeFumarate, quest.GatherCytosolWater, "Arginine collected! Argus will need water from the spring too."},
	},
	world.ItemUrea: {
		{quest.CollectUrea, quest.CollectRecycledOrnithine, "Urea collected! Pick up the ornithine too."},
	},
}

func lookupStep(item string, state quest.State) (resourceStep, bool) {
	for _, step := range resourceSteps[item] {
		if step.when == state {
			return step, true
		}
	}
	return resourceStep{}, false
}

// pickupGuard blocks a pickup with an explanatory message.
type pickupGuard func(state quest.State, inv *inventory.Inventory) (string, bool)

var pickupGuards = map[string]pickupGuard{
	// Arginine stays on the ground until the fumarate is dealt with.
	world.ItemArginine: func(state quest.State, inv *inventory.Inventory) (string, bool) {
		switch {
		case state == quest.CollectFumarate:
			return "Pick up the fumarate first.", true
		case state == quest.DisposeFumarate && inv.Has(world.ItemFumarate):
			return "Drop the fumarate in the waste bucket before taking the arginine.", true
		}
		return "", false
	},
}

// sourceAdvances are the only transitions a source can trigger.
var sourceAdvances = map[quest.State]quest.State{
	quest.GatherWater:        quest.CollectCO2,
	quest.GatherCytosolWater: quest.TalkToArgus,
}
