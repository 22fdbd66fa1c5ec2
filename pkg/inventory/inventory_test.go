package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory_AddRemove(t *testing.T) {
	inv := New()

	inv.Add("ATP", 1)
	inv.Add("ATP", 2)
	assert.Equal(t, 3, inv.Count("ATP"))

	assert.True(t, inv.Remove("ATP", 2))
	assert.Equal(t, 1, inv.Count("ATP"))

	assert.False(t, inv.Remove("ATP", 2), "removing more than held must fail")
	assert.Equal(t, 1, inv.Count("ATP"), "failed remove must not mutate")

	assert.True(t, inv.Remove("ATP", 1))
	_, present := inv.Items()["ATP"]
	assert.False(t, present, "zero-count entries are deleted")
}

func TestInventory_AddDefaultsToOne(t *testing.T) {
	inv := New()
	inv.Add("NH3", 0)
	inv.Add("NH3", -4)
	assert.Equal(t, 2, inv.Count("NH3"))
}

func TestInventory_NeverNegative(t *testing.T) {
	inv := New()
	ops := []struct {
		add  bool
		item string
		qty  int
	}{
		{true, "H2O", 1},
		{false, "H2O", 1},
		{false, "H2O", 1},
		{false, "CO2", 3},
		{true, "CO2", 2},
		{false, "CO2", 3},
		{false, "CO2", 2},
	}

	for _, op := range ops {
		if op.add {
			inv.Add(op.item, op.qty)
		} else {
			inv.Remove(op.item, op.qty)
		}
		for item, qty := range inv.Items() {
			require.Positive(t, qty, "item %s", item)
		}
	}
	assert.Equal(t, 0, inv.Len())
}

func TestInventory_HasRequiredConsumeScenario(t *testing.T) {
	inv := New()
	req := Requirements{"NH3": 1}

	assert.False(t, inv.HasRequired(req))

	inv.Add("NH3", 1)
	assert.True(t, inv.HasRequired(req))

	require.True(t, inv.Consume(req))
	_, present := inv.Items()["NH3"]
	assert.False(t, present)
	assert.False(t, inv.HasRequired(req))
}

func TestInventory_ConsumeReducesExactly(t *testing.T) {
	inv := New()
	inv.Add("ATP", 3)
	inv.Add("NH3", 1)
	inv.Add("HCO3-", 1)

	req := Requirements{"ATP": 2, "NH3": 1, "HCO3-": 1}
	require.True(t, inv.HasRequired(req))
	require.True(t, inv.Consume(req))

	assert.Equal(t, 1, inv.Count("ATP"))
	assert.Equal(t, 0, inv.Count("NH3"))
	assert.Equal(t, 0, inv.Count("HCO3-"))
	assert.False(t, inv.HasRequired(req))
}

func TestInventory_ConsumeIsAtomic(t *testing.T) {
	inv := New()
	inv.Add("ATP", 2)

	ok := inv.Consume(Requirements{"ATP": 2, "NH3": 1})
	assert.False(t, ok)
	assert.Equal(t, 2, inv.Count("ATP"), "partial consumption must not happen")
}

func TestInventory_Missing(t *testing.T) {
	inv := New()
	inv.Add("ATP", 1)

	missing := inv.Missing(Requirements{"ATP": 2, "NH3": 1, "HCO3-": 0})
	assert.Equal(t, Requirements{"ATP": 1, "NH3": 1}, missing)
	assert.Equal(t, "1 ATP, 1 NH3", missing.String())
	assert.Empty(t, inv.Missing(Requirements{"ATP": 1}))
}

func TestInventory_OnChangeReceivesFullMapping(t *testing.T) {
	inv := New()
	var calls []map[string]int
	inv.OnChange(func(items map[string]int) {
		calls = append(calls, items)
	})

	inv.Add("ATP", 2)
	inv.Remove("ATP", 1)
	inv.Remove("ATP", 5)
	inv.Consume(Requirements{"ATP": 1})

	require.Len(t, calls, 3, "failed removals do not notify")
	assert.Equal(t, map[string]int{"ATP": 2}, calls[0])
	assert.Equal(t, map[string]int{"ATP": 1}, calls[1])
	assert.Empty(t, calls[2])

	// the hook receives a copy
	calls[1]["ATP"] = 99
	assert.Equal(t, 0, inv.Count("ATP"))
}

func TestInventory_RestoreDropsNonPositive(t *testing.T) {
	inv := New()
	inv.Add("Urea", 1)
	inv.Restore(map[string]int{"ATP": 2, "NH3": 0, "CO2": -1})

	assert.Equal(t, map[string]int{"ATP": 2}, inv.Items())
}

func TestInventory_Describe(t *testing.T) {
	inv := New()
	assert.Equal(t, "Your inventory is empty.", inv.Describe())

	inv.Add("NH3", 1)
	inv.Add("ATP", 2)
	assert.Equal(t, "You have:\n- ATP x2\n- NH3 x1", inv.Describe())
}
