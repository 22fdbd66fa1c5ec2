package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/urea-quest/internal/autosave"
	"github.com/jwebster45206/urea-quest/internal/config"
	"github.com/jwebster45206/urea-quest/pkg/game"
	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/trivia"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

const (
	Title        = "UREA QUEST"
	tickInterval = 100 * time.Millisecond
	stepSize     = 1.0
	maxLogLines  = 200
)

// ConsoleUI is the BubbleTea model that runs the game.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config  *config.Config
	session *game.Session
	saver   *autosave.Saver
	log     *slog.Logger

	logViewport  viewport.Model
	metaViewport viewport.Model
	ready        bool
	width        int
	height       int

	history    []narrative.Message
	question   narrative.Message
	toast      string
	toastUntil time.Time
	err        error

	// Quit confirmation state
	showQuitModal bool
}

type tickMsg time.Time

// continueTriviaMsg ends the cooldown that follows a correct answer. index
// is the trivia index when the cooldown began; a message for an earlier
// cooldown is ignored.
type continueTriviaMsg struct {
	index int
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	feedbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	dialogueStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *config.Config, session *game.Session, saver *autosave.Saver, log *slog.Logger) ConsoleUI {
	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		config:       cfg,
		session:      session,
		saver:        saver,
		log:          log,
		logViewport:  logVp,
		metaViewport: metaVp,
	}
	m.drain(time.Now())
	return m
}

func (m ConsoleUI) Init() tea.Cmd {
	return tick()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true

	case tickMsg:
		now := time.Time(msg)
		m.session.Tick()
		m.drain(now)
		if !m.toastUntil.IsZero() && now.After(m.toastUntil) {
			m.toast, m.toastUntil = "", time.Time{}
		}
		if m.saver != nil && m.saver.Due(now) {
			m.autosave()
		}
		m.refresh()
		return m, tick()

	case continueTriviaMsg:
		if m.session.Trivia.Phase() == trivia.PhaseCooldown && m.session.Trivia.Index() == msg.index {
			m.session.ContinueTrivia()
			m.drain(time.Now())
			m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		cmd = m.handleKey(msg)
		m.drain(time.Now())
		m.refresh()
		return m, cmd
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *ConsoleUI) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		if _, open := m.session.Dialogue(); open {
			m.session.Decline()
		} else if m.session.Trivia.Running() {
			m.session.AbandonTrivia()
		}
		return nil
	case tea.KeySpace:
		if m.session.Trivia.Phase() == trivia.PhaseCooldown {
			m.session.ContinueTrivia()
		}
		return nil
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return cmd
	}

	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return m.choose(int(key[0] - '1'))
	}

	switch key {
	case "w", "a", "s", "d":
		m.move(key)
	case "e":
		m.session.InteractNearest(nil)
	case "i", "o", "l":
		m.session.HandleCommand(key)
	case "c":
		m.copyObjective()
	case "q":
		m.showQuitModal = true
	}
	return nil
}

// choose picks a dialogue option or, during the river challenge, an answer.
func (m *ConsoleUI) choose(i int) tea.Cmd {
	if _, open := m.session.Dialogue(); open {
		m.session.Choose(i)
		return nil
	}
	if !m.session.Trivia.Running() {
		return nil
	}
	ans := m.session.Answer(i)
	if ans.Correct && !ans.Finished {
		index := m.session.Trivia.Index()
		return tea.Tick(trivia.DefaultCooldown, func(time.Time) tea.Msg {
			return continueTriviaMsg{index: index}
		})
	}
	return nil
}

func (m *ConsoleUI) move(key string) {
	if m.session.Interacting() {
		return
	}
	var delta world.Vec3
	switch key {
	case "w":
		delta.Z = -stepSize
	case "s":
		delta.Z = stepSize
	case "a":
		delta.X = -stepSize
	case "d":
		delta.X = stepSize
	}
	m.session.World.Move(delta)
}

func (m *ConsoleUI) copyObjective() {
	if err := clipboard.WriteAll(m.session.Objective()); err != nil {
		m.log.Warn("Clipboard unavailable", "error", err)
		m.showToast("Clipboard unavailable.", time.Now())
		return
	}
	m.showToast("Objective copied.", time.Now())
}

func (m *ConsoleUI) autosave() {
	saved, err := m.saver.Save(context.Background(), m.session.Snapshot())
	if err != nil {
		m.err = err
		m.log.Error("Autosave failed", "error", err)
		return
	}
	m.err = nil
	if saved {
		m.showToast("Game saved.", time.Now())
	}
}

// drain moves pending session output into the log and the toast line.
func (m *ConsoleUI) drain(now time.Time) {
	for _, msg := range m.session.Messages() {
		if msg.IsZero() {
			continue
		}
		m.history = append(m.history, msg)
		switch msg.Kind {
		case narrative.KindFeedback:
			m.showToast(msg.Text, now)
		case narrative.KindQuestion:
			m.question = msg
		}
	}
	if len(m.history) > maxLogLines {
		m.history = slices.Clone(m.history[len(m.history)-maxLogLines:])
	}
	if !m.session.Trivia.Running() {
		m.question = narrative.Message{}
	}
}

func (m *ConsoleUI) showToast(text string, now time.Time) {
	d := m.config.FeedbackDuration
	if d <= 0 {
		d = narrative.DefaultFeedbackDuration
	}
	m.toast = text
	m.toastUntil = now.Add(d)
}

func (m *ConsoleUI) resize() {
	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = max(m.height-14, 3)
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.refresh()
}

func (m *ConsoleUI) refresh() {
	m.writeLogContent()
	m.metaViewport.SetContent(writeMetadata(m.session, max(m.metaViewport.Width, 10)))
}

// writeLogContent rebuilds the log for the current viewport width.
func (m *ConsoleUI) writeLogContent() {
	width := max(m.logViewport.Width-6, 20)

	var content strings.Builder
	content.WriteString(titleStyle.Render(Title) + "\n\n")
	content.WriteString("Walk with WASD and press E near something to interact.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, msg := range m.history {
		content.WriteString(formatMessage(msg, width) + "\n\n")
	}
	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func formatMessage(msg narrative.Message, width int) string {
	switch msg.Kind {
	case narrative.KindDialogue:
		prefix := msg.Speaker + ": "
		return speakerStyle.Render(prefix) + wordwrap.String(msg.Text, width-len(prefix))
	case narrative.KindQuestion:
		return questionStyle.Render(wordwrap.String(msg.Text, width))
	default:
		return feedbackStyle.Render(wordwrap.String(msg.Text, width))
	}
}

func writeMetadata(s *game.Session, width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("CELL STATUS") + "\n\n")

	pos, area := s.World.Player()
	content.WriteString("Area:\n")
	content.WriteString(fmt.Sprintf("%s (%.0f, %.0f)\n\n", area, pos.X, pos.Z))

	content.WriteString("Objective:\n")
	content.WriteString(wordwrap.String(strings.TrimPrefix(s.Objective(), "Current objective: "), width) + "\n\n")

	content.WriteString("Inventory:\n")
	items := s.Inventory.Items()
	if len(items) == 0 {
		content.WriteString("Empty\n")
	}
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		content.WriteString(fmt.Sprintf("• %s x%d\n", name, items[name]))
	}

	content.WriteString("\nIn reach:\n")
	if t := s.World.NearestInteractiveObject(); t != nil {
		content.WriteString(fmt.Sprintf("%s (%s)\n", t.Name, t.Kind.Label()))
	} else {
		content.WriteString("Nothing\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• WASD: Move\n")
	content.WriteString("• E: Interact\n")
	content.WriteString("• 1-9: Choose\n")
	content.WriteString("• Esc: Close\n")
	content.WriteString("• I/O/L: Info\n")
	content.WriteString("• C: Copy goal\n")
	content.WriteString("• Q: Save & quit\n")

	return content.String()
}

func (m ConsoleUI) renderPrompt(width int) string {
	if dlg, open := m.session.Dialogue(); open {
		var b strings.Builder
		b.WriteString(speakerStyle.Render(dlg.Speaker) + "\n")
		b.WriteString(wordwrap.String(dlg.Text, width-4) + "\n\n")
		for i, opt := range dlg.Options {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, opt.Text))
		}
		b.WriteString(promptStyle.Render("Press a number to choose, Esc to close"))
		return dialogueStyle.Width(width).Render(b.String())
	}

	if m.question.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString(speakerStyle.Render(m.question.Speaker) + "\n")
	b.WriteString(wordwrap.String(m.question.Text, width-4) + "\n\n")
	for i, a := range m.question.Answers {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, a))
	}
	if m.session.Trivia.Phase() == trivia.PhaseCooldown {
		b.WriteString(promptStyle.Render("Correct! Press space to continue"))
	} else {
		b.WriteString(promptStyle.Render("Press a number to answer, Esc to walk away"))
	}
	return dialogueStyle.Width(width).Render(b.String())
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress will be saved.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to save and quit, N to keep playing"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	toast := ""
	if m.toast != "" {
		toast = toastStyle.Render(m.toast)
	}

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 1))),
			toast,
			m.renderPrompt(max(logWidth-4, 20)),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
