package world

import (
	"math"

	"github.com/jwebster45206/urea-quest/pkg/inventory"
	"github.com/jwebster45206/urea-quest/pkg/quest"
)

const (
	AreaMitochondria = "mitochondria"
	AreaCytosol      = "cytosol"
)

// Vec3 is a world-space position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Distance(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Target is the declared contract of anything the player can act on.
// Kind selects which of the kind-specific fields are meaningful.
type Target struct {
	ID       string
	Kind     Kind
	Name     string
	Area     string
	Position Vec3
	Color    string

	// RequiredState is the quest state the interaction is valid in.
	// Empty means always valid.
	RequiredState quest.State
	Requires      inventory.Requirements // consumed on success
	Produces      []string               // created on success, in order
	AdvancesTo    quest.State            // next state on success

	Item        string // resource: the item picked up
	Provides    string // source: the item dispensed
	Disposes    string // waste bucket: the item accepted
	Destination Vec3   // portal: where the player lands
	DestArea    string // portal: area on the far side
}

// AlwaysValid reports whether the target declares no required state.
func (t *Target) AlwaysValid() bool {
	return t.RequiredState == ""
}

// Sink receives world mutations from the resolver. Calls are fire-and-forget.
type Sink interface {
	SpawnItem(item string, pos Vec3, color string)
	RemoveItem(t *Target)
	RemoveBarrier()
	RelocatePlayer(pos Vec3, area string)
}

// Proximity supplies the object currently in reach of the player.
type Proximity interface {
	NearestInteractiveObject() *Target
}

// SpawnOffset spreads n spawned items side by side in front of a target
// so they never overlap.
func SpawnOffset(i, n int) Vec3 {
	const spacing = 1.5
	center := float64(n-1) / 2
	return Vec3{X: (float64(i) - center) * spacing, Z: 2}
}
