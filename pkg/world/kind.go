package world

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind tags an interaction target. Each kind has its own resolver strategy.
type Kind int

const (
	KindNPC Kind = iota
	KindResource
	KindSource
	KindStation
	KindPortal
	KindWasteBucket
)

// Kinds lists every kind, for exhaustiveness checks.
var Kinds = []Kind{KindNPC, KindResource, KindSource, KindStation, KindPortal, KindWasteBucket}

var kindNames = map[Kind]string{
	KindNPC:         "npc",
	KindResource:    "resource",
	KindSource:      "source",
	KindStation:     "station",
	KindPortal:      "portal",
	KindWasteBucket: "waste_bucket",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var titleCaser = cases.Title(language.English)

// Label is the display form of the kind, e.g. "Waste Bucket".
func (k Kind) Label() string {
	if k == KindNPC {
		return "NPC"
	}
	return titleCaser.String(strings.ReplaceAll(k.String(), "_", " "))
}
