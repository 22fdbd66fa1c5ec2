package game

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/urea-quest/pkg/narrative"
)

type CommandType string

const (
	CmdLook      CommandType = "look"
	CmdInventory CommandType = "inventory"
	CmdObjective CommandType = "objective"
	CmdNone      CommandType = "" // not a recognized command
)

var knownCommands = map[string]CommandType{
	"look":      CmdLook,
	"l":         CmdLook,
	"inventory": CmdInventory,
	"inv":       CmdInventory,
	"i":         CmdInventory,
	"objective": CmdObjective,
	"quest":     CmdObjective,
	"o":         CmdObjective,
}

// parseCommand returns the command for input, or CmdNone.
func parseCommand(input string) CommandType {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	if trimmed == "" {
		return CmdNone
	}
	return knownCommands[trimmed]
}

// HandleCommand answers a shortcut command without touching game state.
// The bool is false when input is not a command.
func (s *Session) HandleCommand(input string) (narrative.Message, bool) {
	var text string
	switch parseCommand(input) {
	case CmdLook:
		text = s.DescribeSurroundings()
	case CmdInventory:
		text = s.Inventory.Describe()
	case CmdObjective:
		text = s.objectiveLine()
	default:
		return narrative.Message{}, false
	}
	msg := narrative.Feedback(text)
	s.out.Push(msg)
	return msg, true
}

// DescribeSurroundings lists what is close to the player.
func (s *Session) DescribeSurroundings() string {
	_, area := s.World.Player()
	var b strings.Builder
	fmt.Fprintf(&b, "You are in the %s.", area)

	targets := s.World.InArea(area)
	if len(targets) > 5 {
		targets = targets[:5]
	}
	if len(targets) == 0 {
		return b.String()
	}
	b.WriteString(" Nearby:")
	for _, t := range targets {
		fmt.Fprintf(&b, "\n- %s (%s)", t.Name, t.Kind.Label())
	}
	if nearest := s.World.NearestInteractiveObject(); nearest != nil {
		fmt.Fprintf(&b, "\nPress E to interact with %s.", nearest.Name)
	}
	return b.String()
}
