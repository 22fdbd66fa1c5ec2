package quest

import (
	"errors"
	"slices"
)

// State is one milestone of the urea cycle walkthrough.
type State string

const (
	NotStarted State = "NOT_STARTED"

	// Mitochondrial matrix
	GatherWater               State = "GATHER_WATER"
	CollectCO2                State = "COLLECT_CO2"
	MakeBicarbonate           State = "MAKE_BICARBONATE"
	CollectBicarbonate        State = "COLLECT_BICARBONATE"
	CollectAmmonia            State = "COLLECT_AMMONIA"
	CollectATPFirst           State = "COLLECT_ATP_FIRST"
	CollectATPSecond          State = "COLLECT_ATP_SECOND"
	TalkToNagi                State = "TALK_TO_NAGI"
	TalkToCasper              State = "TALK_TO_CASPER"
	CollectCarbamoylPhosphate State = "COLLECT_CARBAMOYL_PHOSPHATE"
	CollectOrnithine          State = "COLLECT_ORNITHINE"
	TalkToOtis                State = "TALK_TO_OTIS"
	CollectCitrulline         State = "COLLECT_CITRULLINE"
	EnterPortal               State = "ENTER_PORTAL"

	// Cytosol
	CollectCytosolCitrulline  State = "COLLECT_CYTOSOL_CITRULLINE"
	CollectAspartate          State = "COLLECT_ASPARTATE"
	CollectCytosolATP         State = "COLLECT_CYTOSOL_ATP"
	TalkToAsha                State = "TALK_TO_ASHA"
	CollectArgininosuccinate  State = "COLLECT_ARGININOSUCCINATE"
	TalkToAslan               State = "TALK_TO_ASLAN"
	CollectFumarate           State = "COLLECT_FUMARATE"
	DisposeFumarate           State = "DISPOSE_FUMARATE"
	GatherCytosolWater        State = "GATHER_CYTOSOL_WATER"
	TalkToArgus               State = "TALK_TO_ARGUS"
	CollectUrea               State = "COLLECT_UREA"
	CollectRecycledOrnithine  State = "COLLECT_RECYCLED_ORNITHINE"
	DeliverUrea               State = "DELIVER_UREA"
	ReturnOrnithine           State = "RETURN_ORNITHINE"
	RiverChallenge            State = "RIVER_CHALLENGE"
	Completed                 State = "COMPLETED"
)

var ErrUnknownState = errors.New("unknown quest state")

// Order is the canonical walkthrough order.
var Order = []State{
	NotStarted,
	GatherWater,
	CollectCO2,
	MakeBicarbonate,
	CollectBicarbonate,
	CollectAmmonia,
	CollectATPFirst,
	CollectATPSecond,
	TalkToNagi,
	TalkToCasper,
	CollectCarbamoylPhosphate,
	CollectOrnithine,
	TalkToOtis,
	CollectCitrulline,
	EnterPortal,
	CollectCytosolCitrulline,
	CollectAspartate,
	CollectCytosolATP,
	TalkToAsha,
	CollectArgininosuccinate,
	TalkToAslan,
	CollectFumarate,
	DisposeFumarate,
	GatherCytosolWater,
	TalkToArgus,
	CollectUrea,
	CollectRecycledOrnithine,
	DeliverUrea,
	ReturnOrnithine,
	RiverChallenge,
	Completed,
}

// Index returns the position of s in Order, or -1 if s is unknown.
func (s State) Index() int {
	return slices.Index(Order, s)
}

// Valid reports whether s is one of the enumerated states.
func (s State) Valid() bool {
	return s.Index() >= 0
}

// Before reports whether s comes strictly earlier in the walkthrough than o.
func (s State) Before(o State) bool {
	i, j := s.Index(), o.Index()
	return i >= 0 && j >= 0 && i < j
}

// In reports whether s is one of states.
func (s State) In(states ...State) bool {
	return slices.Contains(states, s)
}

func (s State) String() string {
	return string(s)
}
