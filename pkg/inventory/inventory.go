package inventory

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Requirements maps an item name to the quantity needed.
type Requirements map[string]int

// String renders requirements in a stable order, e.g. "2 ATP, 1 NH3".
func (r Requirements) String() string {
	if len(r) == 0 {
		return "nothing"
	}
	parts := make([]string, 0, len(r))
	for _, item := range slices.Sorted(maps.Keys(r)) {
		parts = append(parts, fmt.Sprintf("%d %s", r[item], item))
	}
	return strings.Join(parts, ", ")
}

// ChangeFunc receives a copy of the full inventory after every mutation.
type ChangeFunc func(items map[string]int)

// Inventory is the player's item store. Counts are always positive;
// an item whose count reaches zero is removed.
type Inventory struct {
	items    map[string]int
	onChange ChangeFunc
}

func New() *Inventory {
	return &Inventory{items: make(map[string]int)}
}

// OnChange registers the display refresh hook. Only one hook is kept.
func (inv *Inventory) OnChange(fn ChangeFunc) {
	inv.onChange = fn
}

// Add increments the count of item. A quantity below one adds a single unit.
func (inv *Inventory) Add(item string, qty int) {
	if qty < 1 {
		qty = 1
	}
	inv.items[item] += qty
	inv.notify()
}

// Remove takes qty of item out of the inventory. It fails without mutating
// anything when fewer than qty are held.
func (inv *Inventory) Remove(item string, qty int) bool {
	if qty < 1 {
		qty = 1
	}
	held := inv.items[item]
	if held < qty {
		return false
	}
	if held == qty {
		delete(inv.items, item)
	} else {
		inv.items[item] = held - qty
	}
	inv.notify()
	return true
}

// Count returns how many of item are held. Absent items count as zero.
func (inv *Inventory) Count(item string) int {
	return inv.items[item]
}

// Has reports whether at least one of item is held.
func (inv *Inventory) Has(item string) bool {
	return inv.items[item] > 0
}

// HasRequired reports whether every listed item is held in at least the
// required quantity.
func (inv *Inventory) HasRequired(req Requirements) bool {
	for item, qty := range req {
		if inv.items[item] < qty {
			return false
		}
	}
	return true
}

// Missing returns the shortfall between req and what is held.
// The result is empty when HasRequired(req) is true.
func (inv *Inventory) Missing(req Requirements) Requirements {
	missing := Requirements{}
	for item, qty := range req {
		if held := inv.items[item]; held < qty {
			missing[item] = qty - held
		}
	}
	return missing
}

// Consume removes every requirement in one step. All entries are validated
// before any is applied, so a failed Consume leaves the inventory untouched.
func (inv *Inventory) Consume(req Requirements) bool {
	if !inv.HasRequired(req) {
		return false
	}
	for item, qty := range req {
		if qty < 1 {
			continue
		}
		if inv.items[item] == qty {
			delete(inv.items, item)
		} else {
			inv.items[item] -= qty
		}
	}
	inv.notify()
	return true
}

// Items returns a copy of the current contents.
func (inv *Inventory) Items() map[string]int {
	return maps.Clone(inv.items)
}

// Len returns the number of distinct items held.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Restore replaces the contents, dropping any non-positive counts.
func (inv *Inventory) Restore(items map[string]int) {
	inv.items = make(map[string]int, len(items))
	for item, qty := range items {
		if qty > 0 {
			inv.items[item] = qty
		}
	}
	inv.notify()
}

// Describe renders the inventory for the player.
func (inv *Inventory) Describe() string {
	if len(inv.items) == 0 {
		return "Your inventory is empty."
	}
	var b strings.Builder
	b.WriteString("You have:")
	for _, item := range slices.Sorted(maps.Keys(inv.items)) {
		fmt.Fprintf(&b, "\n- %s x%d", item, inv.items[item])
	}
	return b.String()
}

func (inv *Inventory) notify() {
	if inv.onChange != nil {
		inv.onChange(maps.Clone(inv.items))
	}
}
