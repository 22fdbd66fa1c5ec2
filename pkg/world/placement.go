package world

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Placement is a pickable item lying in the world, in a form that can be
// saved and put back.
type Placement struct {
	ID       string `json:"id"`
	Item     string `json:"item"`
	Area     string `json:"area"`
	Position Vec3   `json:"position"`
}

// Resources lists every resource currently lying in the world, by id.
func (c *Catalog) Resources() []Placement {
	var out []Placement
	for _, t := range c.targets {
		if t.Kind != KindResource {
			continue
		}
		out = append(out, Placement{ID: t.ID, Item: t.Item, Area: t.Area, Position: t.Position})
	}
	slices.SortFunc(out, func(a, b Placement) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// RestoreResources replaces every resource in the world with items.
// Fixed targets (NPCs, sources, stations) are left alone.
func (c *Catalog) RestoreResources(items []Placement) {
	for id, t := range c.targets {
		if t.Kind == KindResource {
			delete(c.targets, id)
		}
	}
	for _, p := range items {
		area := p.Area
		if area == "" {
			area = c.areaAt(p.Position)
		}
		c.targets[p.ID] = &Target{
			ID:       p.ID,
			Kind:     KindResource,
			Name:     p.Item,
			Item:     p.Item,
			Area:     area,
			Position: p.Position,
			Color:    ColorOf(p.Item),
		}
		c.spawnSerial = max(c.spawnSerial, spawnSerialOf(p.ID))
	}
}

// spawnSerialOf returns the numeric suffix of a spawned item id, or 0.
func spawnSerialOf(id string) int {
	i := strings.LastIndex(id, "-")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return 0
	}
	return n
}

// SetBarrier raises or lowers the portal barrier without side effects.
func (c *Catalog) SetBarrier(up bool) {
	c.barrierUp = up
}
