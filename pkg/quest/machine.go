package quest

import (
	"fmt"
	"io"
	"log/slog"
)

// Active is the single in-progress quest instance.
type Active struct {
	DefinitionID string `json:"definition_id"`
	State        State  `json:"state"`
}

type EventType string

const (
	EventStarted   EventType = "started"
	EventAdvanced  EventType = "advanced"
	EventCompleted EventType = "completed"
	EventCleared   EventType = "cleared"
)

// Event describes a transition of the active quest.
type Event struct {
	Type      EventType
	From      State
	To        State
	Objective string
	Reward    *Reward // set on EventCompleted
}

// Machine holds zero or one active quest and moves it between states.
// It performs no sequencing validation: any declared state other than the
// current one is a valid target.
type Machine struct {
	def          *Definition
	active       *Active
	clearPending bool
	finished     bool
	subscribers  []func(Event)
	logger       *slog.Logger
}

func NewMachine(def *Definition, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Machine{def: def, logger: logger}
}

// Subscribe registers fn to receive every quest event.
func (m *Machine) Subscribe(fn func(Event)) {
	m.subscribers = append(m.subscribers, fn)
}

// Definition returns the quest table the machine runs.
func (m *Machine) Definition() *Definition {
	return m.def
}

// Start activates def at its first gather state. It returns false if a
// quest is already underway, so a duplicated accept is harmless.
func (m *Machine) Start(def *Definition) bool {
	if def == nil || def.ID != m.def.ID {
		m.logger.Debug("Quest start rejected: unknown definition")
		return false
	}
	if m.finished {
		m.logger.Debug("Quest start rejected: already completed", "quest_id", def.ID)
		return false
	}
	if m.active != nil && m.active.State != NotStarted {
		m.logger.Debug("Quest start rejected: already active",
			"quest_id", m.active.DefinitionID,
			"state", m.active.State)
		return false
	}

	m.active = &Active{DefinitionID: def.ID, State: def.FirstState}
	m.clearPending = false
	m.logger.Info("Quest started", "quest_id", def.ID, "state", def.FirstState)
	m.emit(Event{
		Type:      EventStarted,
		From:      NotStarted,
		To:        def.FirstState,
		Objective: def.Objective(def.FirstState),
	})
	return true
}

// Advance moves the active quest to the given state. It returns false when
// there is no active quest, the id does not match, the state is unknown, or
// the quest is already in that state.
func (m *Machine) Advance(definitionID string, to State) bool {
	if m.active == nil {
		m.logger.Debug("Advance rejected: no active quest", "to", to)
		return false
	}
	if m.active.DefinitionID != definitionID {
		m.logger.Debug("Advance rejected: definition mismatch",
			"active", m.active.DefinitionID,
			"requested", definitionID)
		return false
	}
	if !m.def.Has(to) {
		m.logger.Warn("Advance rejected: unknown state", "to", to)
		return false
	}
	if m.active.State == to {
		return false
	}

	from := m.active.State
	m.active.State = to
	m.logger.Info("Quest advanced", "quest_id", definitionID, "from", from, "to", to)

	m.emit(Event{Type: EventAdvanced, From: from, To: to, Objective: m.def.Objective(to)})
	if to == Completed {
		reward := m.def.Reward
		m.clearPending = true
		m.finished = true
		m.emit(Event{Type: EventCompleted, From: from, To: to, Objective: m.def.Objective(to), Reward: &reward})
	}
	return true
}

// Tick runs once per update. A completed quest is cleared on the tick after
// completion so the final state can still be read in between.
func (m *Machine) Tick() {
	if !m.clearPending {
		return
	}
	m.clearPending = false
	if m.active == nil {
		return
	}
	id := m.active.DefinitionID
	m.active = nil
	m.logger.Info("Quest cleared", "quest_id", id)
	m.emit(Event{Type: EventCleared, From: Completed})
}

// Current returns the active quest state, or NotStarted and false.
func (m *Machine) Current() (State, bool) {
	if m.active == nil {
		return NotStarted, false
	}
	return m.active.State, true
}

// Active returns a copy of the active quest, or nil.
func (m *Machine) Active() *Active {
	if m.active == nil {
		return nil
	}
	a := *m.active
	return &a
}

// Objective returns the objective text for the current state.
func (m *Machine) Objective() string {
	state, _ := m.Current()
	return m.def.Objective(state)
}

// Finished reports whether the quest has been completed in this game,
// including after the completed quest was cleared.
func (m *Machine) Finished() bool {
	return m.finished
}

// MarkFinished records an earlier completion read back from a save.
func (m *Machine) MarkFinished() {
	m.finished = true
}

// Restore replaces the active quest from a snapshot. A nil value clears it
// and forgets any completion. A rejected value changes nothing.
func (m *Machine) Restore(a *Active) error {
	if a == nil {
		m.active = nil
		m.clearPending = false
		m.finished = false
		return nil
	}
	if a.DefinitionID != m.def.ID {
		return fmt.Errorf("%w: %q", ErrDefinitionMismatch, a.DefinitionID)
	}
	if !m.def.Has(a.State) {
		return fmt.Errorf("%w: %q", ErrUnknownState, a.State)
	}
	restored := *a
	m.active = &restored
	// a completed quest read back from a save is cleared on the next tick
	m.clearPending = restored.State == Completed
	m.finished = restored.State == Completed
	return nil
}

func (m *Machine) emit(ev Event) {
	for _, fn := range m.subscribers {
		fn(ev)
	}
}
