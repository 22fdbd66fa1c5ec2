package world

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/jwebster45206/urea-quest/pkg/inventory"
	"github.com/jwebster45206/urea-quest/pkg/quest"
)

// NPC ids referenced by the resolver's per-NPC rules.
const (
	NPCHepa   = "hepa"
	NPCNagi   = "nagi"
	NPCCasper = "casper"
	NPCOtis   = "otis"
	NPCAsha   = "asha"
	NPCAslan  = "aslan"
	NPCArgus  = "argus"
	NPCRenny  = "renny"
	NPCOrrin  = "orrin"
	NPCVera   = "vera"
)

const DefaultInteractRadius = 3.0

// Catalog is a minimal in-memory world: it tracks the placed targets, the
// player position and the portal barrier, and implements Sink and Proximity.
type Catalog struct {
	targets     map[string]*Target
	player      Vec3
	area        string
	barrierUp   bool
	radius      float64
	spawnSerial int
	logger      *slog.Logger
}

func NewCatalog(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Catalog{
		targets:   make(map[string]*Target),
		area:      AreaMitochondria,
		barrierUp: true,
		radius:    DefaultInteractRadius,
		logger:    logger,
	}
}

var (
	_ Sink      = (*Catalog)(nil)
	_ Proximity = (*Catalog)(nil)
)

// Place adds or replaces a target.
func (c *Catalog) Place(t *Target) {
	c.targets[t.ID] = t
}

// Get returns the target with the given id.
func (c *Catalog) Get(id string) (*Target, bool) {
	t, ok := c.targets[id]
	return t, ok
}

// All returns every target ordered by area then id.
func (c *Catalog) All() []*Target {
	out := make([]*Target, 0, len(c.targets))
	for _, t := range c.targets {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Target) int {
		return cmp.Or(cmp.Compare(a.Area, b.Area), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// InArea returns the targets in area, nearest to the player first.
func (c *Catalog) InArea(area string) []*Target {
	var out []*Target
	for _, t := range c.targets {
		if t.Area == area {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b *Target) int {
		return cmp.Or(
			cmp.Compare(a.Position.Distance(c.player), b.Position.Distance(c.player)),
			cmp.Compare(a.ID, b.ID))
	})
	return out
}

func (c *Catalog) SetInteractRadius(r float64) {
	if r > 0 {
		c.radius = r
	}
}

// Player returns the player position and area.
func (c *Catalog) Player() (Vec3, string) {
	return c.player, c.area
}

// Move shifts the player within the current area.
func (c *Catalog) Move(delta Vec3) {
	c.player = c.player.Add(delta)
}

// PlacePlayer sets the player position without side effects, e.g. on restore.
func (c *Catalog) PlacePlayer(pos Vec3, area string) {
	c.player = pos
	if area != "" {
		c.area = area
	}
}

func (c *Catalog) BarrierUp() bool {
	return c.barrierUp
}

// NearestInteractiveObject returns the closest target in the player's area
// within the interaction radius, or nil.
func (c *Catalog) NearestInteractiveObject() *Target {
	var best *Target
	bestDist := c.radius
	for _, t := range c.InArea(c.area) {
		if d := t.Position.Distance(c.player); d <= bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// SpawnItem places a new pickable resource.
func (c *Catalog) SpawnItem(item string, pos Vec3, color string) {
	c.spawnSerial++
	id := fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(item, " ", "_")), c.spawnSerial)
	c.targets[id] = &Target{
		ID:       id,
		Kind:     KindResource,
		Name:     item,
		Item:     item,
		Area:     c.areaAt(pos),
		Position: pos,
		Color:    color,
	}
	c.logger.Debug("Item spawned", "id", id, "item", item)
}

// RemoveItem deletes a picked-up resource from the world.
func (c *Catalog) RemoveItem(t *Target) {
	if t == nil {
		return
	}
	delete(c.targets, t.ID)
	c.logger.Debug("Item removed", "id", t.ID)
}

func (c *Catalog) RemoveBarrier() {
	c.barrierUp = false
	c.logger.Debug("Barrier removed")
}

func (c *Catalog) RelocatePlayer(pos Vec3, area string) {
	c.PlacePlayer(pos, area)
	c.logger.Debug("Player relocated", "area", c.area)
}

// areaAt infers the area from the x coordinate: the cytosol lies beyond
// the portal.
func (c *Catalog) areaAt(pos Vec3) string {
	if pos.X >= cytosolOriginX {
		return AreaCytosol
	}
	return AreaMitochondria
}

const cytosolOriginX = 100

// DefaultCatalog builds the liver cell with every NPC, source, station and
// starting resource of the urea cycle quest.
func DefaultCatalog(logger *slog.Logger) *Catalog {
	c := NewCatalog(logger)
	c.Reset()
	return c
}

// Reset puts back every default target, raises the barrier and returns
// the player to the mitochondrial entrance.
func (c *Catalog) Reset() {
	clear(c.targets)
	for _, t := range defaultTargets() {
		if t.Color == "" && t.Item != "" {
			t.Color = ColorOf(t.Item)
		}
		c.Place(t)
	}
	c.barrierUp = true
	c.spawnSerial = 0
	c.PlacePlayer(Vec3{}, AreaMitochondria)
}

func resource(id, item, area string, pos Vec3) *Target {
	return &Target{ID: id, Kind: KindResource, Name: item, Item: item, Area: area, Position: pos}
}

func defaultTargets() []*Target {
	m, cy := AreaMitochondria, AreaCytosol
	return []*Target{
		// Mitochondrial matrix
		{ID: NPCHepa, Kind: KindNPC, Name: "Professor Hepa", Area: m, Position: Vec3{X: 0}},
		{
			ID: "well", Kind: KindSource, Name: "Mitochondrial Well", Area: m, Position: Vec3{X: 5},
			RequiredState: quest.GatherWater, Provides: ItemWater, Color: ColorOf(ItemWater),
		},
		resource("co2", ItemCO2, m, Vec3{X: 8, Z: 3}),
		{
			ID: "carbonic_shrine", Kind: KindStation, Name: "Carbonic Shrine", Area: m, Position: Vec3{X: 11},
			RequiredState: quest.MakeBicarbonate,
			Requires:      inventory.Requirements{ItemWater: 1, ItemCO2: 1},
			Produces:      []string{ItemBicarbonate},
			AdvancesTo:    quest.CollectBicarbonate,
		},
		resource("nh3", ItemAmmonia, m, Vec3{X: 14, Z: -3}),
		resource("atp_1", ItemATP, m, Vec3{X: 16, Z: 3}),
		resource("atp_2", ItemATP, m, Vec3{X: 17, Z: -3}),
		{
			ID: NPCNagi, Kind: KindNPC, Name: "Nagi", Area: m, Position: Vec3{X: 20},
			RequiredState: quest.TalkToNagi, AdvancesTo: quest.TalkToCasper,
		},
		{
			ID: NPCCasper, Kind: KindNPC, Name: "Casper", Area: m, Position: Vec3{X: 24},
			RequiredState: quest.TalkToCasper,
			Requires:      inventory.Requirements{ItemAmmonia: 1, ItemBicarbonate: 1, ItemATP: 2},
			Produces:      []string{ItemCarbamoylPhosphate},
			AdvancesTo:    quest.CollectCarbamoylPhosphate,
		},
		resource("ornithine", ItemOrnithine, m, Vec3{X: 27, Z: 3}),
		{
			ID: NPCOtis, Kind: KindNPC, Name: "Otis", Area: m, Position: Vec3{X: 30},
			RequiredState: quest.TalkToOtis,
			Requires:      inventory.Requirements{ItemCarbamoylPhosphate: 1, ItemOrnithine: 1},
			Produces:      []string{ItemCitrulline},
			AdvancesTo:    quest.CollectCitrulline,
		},
		{
			ID: "ornt1_portal", Kind: KindPortal, Name: "ORNT1 Portal", Area: m, Position: Vec3{X: 36},
			RequiredState: quest.EnterPortal,
			Requires:      inventory.Requirements{ItemCitrulline: 1},
			Produces:      []string{ItemCitrulline},
			AdvancesTo:    quest.CollectCytosolCitrulline,
			Destination:   Vec3{X: cytosolOriginX},
			DestArea:      cy,
		},

		// Cytosol
		{
			ID: NPCOrrin, Kind: KindNPC, Name: "Orrin", Area: cy, Position: Vec3{X: 101, Z: -4},
			RequiredState: quest.ReturnOrnithine,
			Requires:      inventory.Requirements{ItemOrnithine: 1},
			AdvancesTo:    quest.RiverChallenge,
		},
		resource("aspartate", ItemAspartate, cy, Vec3{X: 106, Z: 3}),
		resource("atp_cytosol", ItemATP, cy, Vec3{X: 108, Z: -3}),
		{
			ID: NPCAsha, Kind: KindNPC, Name: "Asha", Area: cy, Position: Vec3{X: 111},
			RequiredState: quest.TalkToAsha,
			Requires:      inventory.Requirements{ItemCitrulline: 1, ItemAspartate: 1, ItemATP: 1},
			Produces:      []string{ItemArgininosuccinate},
			AdvancesTo:    quest.CollectArgininosuccinate,
		},
		{
			ID: NPCAslan, Kind: KindNPC, Name: "Aslan", Area: cy, Position: Vec3{X: 116},
			RequiredState: quest.TalkToAslan,
			Requires:      inventory.Requirements{ItemArgininosuccinate: 1},
			Produces:      []string{ItemArginine, ItemFumarate},
			AdvancesTo:    quest.CollectFumarate,
		},
		{
			ID: "waste_bucket", Kind: KindWasteBucket, Name: "Waste Bucket", Area: cy, Position: Vec3{X: 121, Z: 4},
			RequiredState: quest.DisposeFumarate, Disposes: ItemFumarate,
		},
		{
			ID: "spring", Kind: KindSource, Name: "Cytosol Spring", Area: cy, Position: Vec3{X: 121, Z: -4},
			RequiredState: quest.GatherCytosolWater, Provides: ItemWater, Color: ColorOf(ItemWater),
		},
		{
			ID: NPCArgus, Kind: KindNPC, Name: "Argus", Area: cy, Position: Vec3{X: 126},
			RequiredState: quest.TalkToArgus,
			Requires:      inventory.Requirements{ItemArginine: 1, ItemWater: 1},
			Produces:      []string{ItemUrea, ItemOrnithine},
			AdvancesTo:    quest.CollectUrea,
		},
		{
			ID: NPCRenny, Kind: KindNPC, Name: "Renny", Area: cy, Position: Vec3{X: 132},
			RequiredState: quest.DeliverUrea,
			Requires:      inventory.Requirements{ItemUrea: 1},
			AdvancesTo:    quest.ReturnOrnithine,
		},
		{
			ID: NPCVera, Kind: KindNPC, Name: "Vera", Area: cy, Position: Vec3{X: 140},
			RequiredState: quest.RiverChallenge, AdvancesTo: quest.Completed,
		},
	}
}
