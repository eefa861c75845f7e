package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kirilian/tui-advent/internal/engine"
	"github.com/kirilian/tui-advent/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 1)

	transcriptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	finishedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)
)

// Model drives one play-through of an adventure.
type Model struct {
	session *Session
	eng     *engine.Engine
	store   *storage.Store

	adventureID string
	title       string

	viewport viewport.Model
	input    textinput.Model
	ready    bool

	turns    int
	recorded bool
	quitting bool
}

// NewModel creates a play model. The engine must already be bound to
// the session and have had Begin called, so the opening room text is in
// the transcript.
func NewModel(session *Session, eng *engine.Engine, store *storage.Store, adventureID, title string) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command"
	ti.CharLimit = 80
	ti.Focus()

	return Model{
		session:     session,
		eng:         eng,
		store:       store,
		adventureID: adventureID,
		title:       title,
		input:       ti,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.recordOutcome("abandoned")
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleCommand()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Title row, border rows, prompt row.
	vpHeight := msg.Height - 5
	if vpHeight < 3 {
		vpHeight = 3
	}
	vpWidth := msg.Width - 4
	if vpWidth < 20 {
		vpWidth = 20
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	inputWidth := vpWidth - len(m.session.PromptText()) - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	m.refreshTranscript()
	return m, nil
}

func (m Model) handleCommand() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}

	if m.eng.State().Finished {
		// Any input after the end leaves the session.
		m.recordOutcome("")
		m.quitting = true
		return m, tea.Quit
	}

	m.session.RecordCommand(line)
	m.eng.ProcessTurn(line)
	m.turns++

	if m.eng.State().Finished {
		m.recordOutcome("")
	}

	m.refreshTranscript()
	return m, nil
}

// recordOutcome writes the session result once. An explicit outcome
// overrides the one derived from the finish reason.
func (m *Model) recordOutcome(outcome string) {
	if m.recorded || m.store == nil {
		return
	}
	if outcome == "" {
		outcome = outcomeName(m.eng.State().Reason)
	}
	//nolint:errcheck // Best-effort history write
	m.store.RecordSession(storage.Session{
		AdventureID: m.adventureID,
		Score:       m.eng.TreasurePercent(),
		Turns:       m.turns,
		Outcome:     outcome,
	})
	m.recorded = true
}

func outcomeName(r engine.FinishReason) string {
	switch r {
	case engine.ReasonScoreVictory:
		return "won"
	case engine.ReasonGameOver:
		return "game_over"
	case engine.ReasonFellInDark:
		return "fell"
	case engine.ReasonKilled:
		return "killed"
	}
	return "game_over"
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.session.Lines(), "\n"))
	m.viewport.GotoBottom()
}

// View renders the transcript window above the prompt line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	title := titleStyle.Render(m.title)

	promptLine := promptStyle.Render(m.session.PromptText()+"?") + " " + m.input.View()
	if m.eng.State().Finished {
		promptLine = finishedStyle.Render("The adventure is over. Press enter to leave.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		transcriptStyle.Render(m.viewport.View()),
		promptLine,
	)
}

// Run starts the Bubble Tea program for a local play session and blocks
// until the player leaves.
func Run(session *Session, eng *engine.Engine, store *storage.Store, adventureID, title string) error {
	model := NewModel(session, eng, store, adventureID, title)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
