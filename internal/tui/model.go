// Package tui provides the Bubble Tea kana drill interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanadrill/internal/drill"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/stats"
	"github.com/verte-zerg/kanadrill/internal/store"
)

const (
	weakTop       = 5
	glyphWidth    = 8
	historyHeight = 8
	resultsHeight = 10
)

// Model implements the Bubble Tea drill UI. It is also the drill's renderer
// and settings source.
type Model struct {
	store    *store.Store
	session  *drill.Session
	trial    *drill.Trial
	clock    *teaClock
	bell     bool
	duration int
	selected map[kana.Name]bool
	active   []kana.Name

	input       textinput.Model
	history     viewport.Model
	results     table.Model
	showResults bool

	width  int
	height int

	prompt    string
	previous  drill.Verdict
	feedback  []model.Record
	score     int
	correct   int
	total     int
	pct       float64
	timerText string
	locked    bool
	cue       drill.Cue
	hasCue    bool
	weak      []string
	statusMsg string

	lastAnswer int64
	weakAfter  int64

	cmds []tea.Cmd
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BD88F"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	timerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	glyphStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// NewModel constructs the drill UI over the configured kana sets.
func NewModel(cfg model.Config, st *store.Store, picker drill.Picker) (*Model, error) {
	names, err := kana.ParseNames(cfg.Sets)
	if err != nil {
		return nil, err
	}
	m := &Model{
		store:    st,
		clock:    newTeaClock(),
		bell:     cfg.Bell,
		duration: cfg.TrialSeconds,
		selected: map[kana.Name]bool{},
	}
	m.selectOnly(names)

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "romaji"
	m.input.CharLimit = 16
	m.input.Width = 16
	m.input.Focus()
	m.history = viewport.New(40, historyHeight)

	session, err := drill.New(kana.Union(names...), m, picker)
	if err != nil {
		if errors.Is(err, drill.ErrEmptySet) {
			return nil, fmt.Errorf("no kana sets selected: %w", err)
		}
		return nil, err
	}
	m.session = session
	m.active = names
	m.trial = drill.NewTrial(session, m.clock, m)
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(append([]tea.Cmd{textinput.Blink}, m.flush()...)...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
	case clockTickMsg:
		m.clock.fire(msg.id)
		if m.trial.Phase() == drill.PhaseExpired {
			m.showResults = true
			m.refreshResults()
		}
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, tea.Batch(append([]tea.Cmd{cmd}, m.flush()...)...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c", "esc":
		return tea.Quit
	case "enter":
		if !m.locked && m.trial.WaitingForKeystroke() {
			m.trial.Keystroke()
		}
		if _, ok := m.session.SubmitAnswer(m.input.Value()); ok {
			m.input.SetValue("")
		}
		return nil
	case "ctrl+t":
		m.showResults = false
		m.statusMsg = ""
		m.trial.Start()
		return nil
	case "ctrl+r":
		m.statusMsg = ""
		m.session.Reset()
		return nil
	case "ctrl+l":
		m.session.ClearHistory()
		return nil
	case "ctrl+u":
		m.applySelection()
		return nil
	case "tab":
		m.showResults = !m.showResults
		if m.showResults {
			m.refreshResults()
		}
		return nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return cmd
	}
	if idx, ok := subsetToggleIndex(key); ok {
		m.toggleSubset(idx)
		return nil
	}
	if m.locked {
		return nil
	}
	if m.trial.WaitingForKeystroke() {
		m.trial.Keystroke()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// subsetToggleIndex maps alt+1..alt+5 to a subset index.
func subsetToggleIndex(key string) (int, bool) {
	if !strings.HasPrefix(key, "alt+") || len(key) != len("alt+")+1 {
		return 0, false
	}
	d := key[len(key)-1]
	if d < '1' || int(d-'1') >= len(kana.Names()) {
		return 0, false
	}
	return int(d - '1'), true
}

func (m *Model) toggleSubset(idx int) {
	name := kana.Names()[idx]
	m.selected[name] = !m.selected[name]
	m.statusMsg = "ctrl+u applies the selection"
}

func (m *Model) applySelection() {
	names := m.SelectedSubsets()
	err := m.session.ConfigureFrom(m)
	switch {
	case errors.Is(err, drill.ErrEmptySet):
		m.selectOnly(m.active)
		m.statusMsg = "select at least one kana set"
	case err != nil:
		m.selectOnly(m.active)
		m.statusMsg = err.Error()
	default:
		m.active = names
		m.showResults = false
		m.statusMsg = fmt.Sprintf("drilling %d kana", m.session.Set().Len())
	}
}

func (m *Model) selectOnly(names []kana.Name) {
	clear(m.selected)
	for _, name := range names {
		m.selected[name] = true
	}
}

// SelectedSubsets implements drill.Settings.
func (m *Model) SelectedSubsets() []kana.Name {
	var out []kana.Name
	for _, name := range kana.Names() {
		if m.selected[name] {
			out = append(out, name)
		}
	}
	return out
}

// TrialDurationSeconds implements drill.Settings.
func (m *Model) TrialDurationSeconds() int {
	return m.duration
}

func (m *Model) flush() []tea.Cmd {
	cmds := append(m.cmds, m.clock.drain()...)
	m.cmds = nil
	return cmds
}

func (m *Model) updateLayout() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	if w > 60 {
		w = 60
	}
	m.history.Width = w
	m.history.Height = historyHeight
	m.refreshHistory()
	if m.showResults {
		m.refreshResults()
	}
}

func (m *Model) refreshHistory() {
	m.history.SetContent(renderHistory(m.feedback, m.history.Width))
	m.history.GotoTop()
}

func (m *Model) refreshWeak() {
	if m.store == nil {
		return
	}
	aggs, err := m.store.CharAggregatesSince(context.Background(), m.weakAfter)
	if err != nil {
		m.statusMsg = fmt.Sprintf("failed to load answer stats: %v", err)
		return
	}
	m.weak = stats.SelectWeakChars(aggs, weakTop)
}

func (m *Model) refreshResults() {
	var aggs []model.CharAggregate
	if m.store != nil {
		var err error
		aggs, err = m.store.CharAggregates(context.Background())
		if err != nil {
			m.statusMsg = fmt.Sprintf("failed to load answer stats: %v", err)
			return
		}
	}
	m.results = buildResultsTable(aggs, resultsHeight)
}

func buildResultsTable(aggs []model.CharAggregate, height int) table.Model {
	columns := []table.Column{
		{Title: "Kana", Width: 6},
		{Title: "Accuracy", Width: 9},
		{Title: "Correct", Width: 7},
		{Title: "Wrong", Width: 5},
	}
	sorted := stats.WeakestFirst(aggs)
	rows := make([]table.Row, 0, len(sorted))
	for _, agg := range sorted {
		rows = append(rows, table.Row{
			agg.Char,
			fmt.Sprintf("%.2f%%", stats.Accuracy(agg.Correct, agg.Correct+agg.Incorrect)),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	styles := table.DefaultStyles()
	styles.Selected = styles.Cell
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithStyles(styles),
	)
}
