// Package tui renders the three screens of the viewer: today's schedule,
// the daily recap and the preferences editor.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gameday/internal/core"
	"gameday/internal/fetch"
	"gameday/internal/llm"
	"gameday/internal/store"
)

// DateFormat is the wire format for request dates.
const DateFormat = "2006-01-02"

type view int

const (
	viewSchedule view = iota
	viewRecap
	viewPreferences
)

type scheduleLoadedMsg struct {
	seq int
	day *core.CachedDay
	err error
}

type recapLoadedMsg struct {
	seq   int
	recap core.DailyRecap
	err   error
}

type spinnerTickMsg struct{}

// Model is the bubbletea model for the whole application.
type Model struct {
	store *store.Store
	prefs core.Preferences

	view view
	date string

	day     *core.CachedDay
	recap   *core.DailyRecap
	starred map[string]bool

	loading bool
	errText string
	// seq tags every issued request; a result carrying a stale seq is
	// discarded so a slow response never clobbers a fresher one.
	seq int

	cursor        int
	editingAPIKey bool
	apiKeyInput   textinput.Model

	spinnerIndex  int
	spinnerFrames []string

	width  int
	height int

	// Fetch functions, replaceable in tests.
	fetchSchedule func(ctx context.Context, date string, prefs core.Preferences, refresh bool) (*core.CachedDay, error)
	fetchRecap    func(ctx context.Context, date string, prefs core.Preferences) (core.DailyRecap, error)
}

// NewModel builds the initial model for today's date.
func NewModel(s *store.Store, prefs core.Preferences) Model {
	input := textinput.New()
	input.Placeholder = "Gemini API key"
	input.CharLimit = 128
	input.Width = 48
	input.Prompt = "> "

	m := Model{
		store:         s,
		prefs:         prefs,
		date:          time.Now().Format(DateFormat),
		starred:       map[string]bool{},
		apiKeyInput:   input,
		spinnerFrames: []string{"|", "/", "-", "\\"},
	}
	m.fetchSchedule = func(ctx context.Context, date string, prefs core.Preferences, refresh bool) (*core.CachedDay, error) {
		client, err := llm.NewClient(ctx, prefs)
		if err != nil {
			return nil, err
		}
		return fetch.NewService(s, client).Schedule(ctx, date, prefs, refresh)
	}
	m.fetchRecap = func(ctx context.Context, date string, prefs core.Preferences) (core.DailyRecap, error) {
		client, err := llm.NewClient(ctx, prefs)
		if err != nil {
			return core.DailyRecap{}, err
		}
		return fetch.NewService(s, client).Recap(ctx, date, prefs)
	}
	m.reloadStars()
	return m
}

func (m *Model) reloadStars() {
	m.starred = map[string]bool{}
	if m.store == nil {
		return
	}
	if list, err := m.store.Watchlist(); err == nil {
		for _, event := range list {
			m.starred[event.ID] = true
		}
	}
}

// loadInitialMsg triggers the first schedule fetch once the program loop
// is running.
type loadInitialMsg struct{}

// Init kicks off the first schedule load; the fetch starts the spinner.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return loadInitialMsg{} }
}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m Model) startScheduleFetch(refresh bool) (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	m.errText = ""
	seq, date, prefs := m.seq, m.date, m.prefs
	fetchFn := m.fetchSchedule
	return m, tea.Batch(spinnerTick(), func() tea.Msg {
		day, err := fetchFn(context.Background(), date, prefs, refresh)
		return scheduleLoadedMsg{seq: seq, day: day, err: err}
	})
}

func (m Model) startRecapFetch() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	m.errText = ""
	seq, date, prefs := m.seq, m.date, m.prefs
	fetchFn := m.fetchRecap
	return m, tea.Batch(spinnerTick(), func() tea.Msg {
		recap, err := fetchFn(context.Background(), date, prefs)
		return recapLoadedMsg{seq: seq, recap: recap, err: err}
	})
}

func (m Model) shiftDate(days int) (Model, tea.Cmd) {
	parsed, err := time.Parse(DateFormat, m.date)
	if err != nil {
		parsed = time.Now()
	}
	m.date = parsed.AddDate(0, 0, days).Format(DateFormat)
	m.day = nil
	m.recap = nil
	m.cursor = 0
	if m.view == viewRecap {
		return m.startRecapFetch()
	}
	return m.startScheduleFetch(false)
}

func (m Model) savePrefs() Model {
	if m.store != nil {
		if err := m.store.SavePreferences(m.prefs); err != nil {
			m.errText = err.Error()
		}
	}
	return m
}

// Update handles messages and updates the model accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInitialMsg:
		return m.startScheduleFetch(false)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinnerTickMsg:
		if !m.loading {
			// Nothing in flight; stop rescheduling so the program idles
			// instead of redrawing every frame.
			return m, nil
		}
		m.spinnerIndex = (m.spinnerIndex + 1) % len(m.spinnerFrames)
		return m, spinnerTick()

	case scheduleLoadedMsg:
		if msg.seq != m.seq {
			// Stale response from an older request; a fresher one already
			// owns the screen.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.day = msg.day
		return m, nil

	case recapLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		recap := msg.recap
		m.recap = &recap
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingAPIKey {
		switch msg.String() {
		case "enter":
			m.prefs.APIKey = strings.TrimSpace(m.apiKeyInput.Value())
			m.editingAPIKey = false
			return m.savePrefs(), nil
		case "esc":
			m.editingAPIKey = false
			return m, nil
		}
		var cmd tea.Cmd
		m.apiKeyInput, cmd = m.apiKeyInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		m.view = viewSchedule
		if m.day == nil && !m.loading {
			model, cmd := m.startScheduleFetch(false)
			return model, cmd
		}
		return m, nil

	case "r":
		m.view = viewRecap
		if m.recap == nil && !m.loading {
			model, cmd := m.startRecapFetch()
			return model, cmd
		}
		return m, nil

	case "p":
		m.view = viewPreferences
		m.cursor = 0
		return m, nil

	case "R":
		if m.view == viewRecap {
			model, cmd := m.startRecapFetch()
			return model, cmd
		}
		model, cmd := m.startScheduleFetch(true)
		return model, cmd

	case "left":
		return m.shiftDate(-1)

	case "right":
		return m.shiftDate(1)

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.cursorMax() {
			m.cursor++
		}
		return m, nil

	case "w":
		if m.view == viewSchedule && m.day != nil && m.cursor < len(m.day.Events) {
			event := m.day.Events[m.cursor]
			if m.store != nil {
				if _, err := m.store.ToggleWatchlist(event); err != nil {
					m.errText = err.Error()
				} else {
					m.reloadStars()
				}
			}
		}
		return m, nil

	case "h":
		if m.view == viewPreferences {
			m.prefs.HideScores = !m.prefs.HideScores
			return m.savePrefs(), nil
		}
		return m, nil

	case "m":
		if m.view == viewPreferences {
			if m.prefs.Model == core.ModelPro {
				m.prefs.Model = core.ModelFlash
			} else {
				m.prefs.Model = core.ModelPro
			}
			return m.savePrefs(), nil
		}
		return m, nil

	case "a":
		if m.view == viewPreferences {
			m.editingAPIKey = true
			m.apiKeyInput.SetValue(m.prefs.APIKey)
			m.apiKeyInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case " ":
		if m.view == viewPreferences && m.cursor < len(core.AllSports) {
			m.prefs.SelectedSports = toggleString(m.prefs.SelectedSports, core.AllSports[m.cursor])
			return m.savePrefs(), nil
		}
		return m, nil
	}

	return m, nil
}

func (m Model) cursorMax() int {
	switch m.view {
	case viewSchedule:
		if m.day == nil || len(m.day.Events) == 0 {
			return 0
		}
		return len(m.day.Events) - 1
	case viewPreferences:
		return len(core.AllSports) - 1
	}
	return 0
}

// toggleString removes value when present, appends it otherwise.
func toggleString(list []string, value string) []string {
	for i, existing := range list {
		if existing == value {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, value)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	liveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
)

// View renders the active screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Gameday"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  [s]chedule [r]ecap [p]refs", m.date)))
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Press R to retry or p to open preferences."))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(fmt.Sprintf("%s fetching...\n\n", m.spinnerFrames[m.spinnerIndex]))
	}

	switch m.view {
	case viewSchedule:
		b.WriteString(m.scheduleView())
	case viewRecap:
		b.WriteString(m.recapView())
	case viewPreferences:
		b.WriteString(m.preferencesView())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[←/→] day  [R] refresh  [w] star  [q] quit"))

	return docStyle.Render(b.String())
}

func (m Model) scheduleView() string {
	if m.day == nil {
		if m.loading {
			return ""
		}
		return dimStyle.Render("No schedule loaded.")
	}
	if len(m.day.Events) == 0 {
		return dimStyle.Render("No events found for this date.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Events on %s", m.day.Date)))
	b.WriteString("\n\n")
	for i, event := range m.day.Events {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		star := "  "
		if m.starred[event.ID] {
			star = starStyle.Render("★ ")
		}
		line := fmt.Sprintf("%s %-22s %s vs %s  %s (%s)", event.Time, event.League, event.HomeTeam, event.AwayTeam, event.Channel, event.Sport)
		if event.Status == core.StatusLive {
			line = liveStyle.Render("LIVE ") + line
		}
		b.WriteString(cursor + star + line + "\n")
	}
	return b.String()
}

func (m Model) recapView() string {
	if m.recap == nil {
		if m.loading {
			return ""
		}
		return dimStyle.Render("No recap loaded. Press r to fetch.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Recap for %s", m.recap.Date)))
	b.WriteString("\n\n")
	b.WriteString(m.recap.Summary)
	b.WriteString("\n")

	if len(m.recap.Results) > 0 {
		b.WriteString("\n" + headerStyle.Render("Results") + "\n")
		for _, result := range m.recap.Results {
			if m.prefs.HideScores {
				b.WriteString(fmt.Sprintf("  %s: %s vs %s (%s)\n", result.League, result.HomeTeam, result.AwayTeam, dimStyle.Render("scores hidden")))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s: %s %d - %d %s (%s)\n", result.League, result.HomeTeam, result.HomeScore, result.AwayScore, result.AwayTeam, result.Status))
		}
	}

	if len(m.recap.Standings) > 0 && !m.prefs.HideScores {
		b.WriteString("\n" + headerStyle.Render("Standings") + "\n")
		for _, row := range m.recap.Standings {
			b.WriteString(fmt.Sprintf("  %2d. %-24s P%d  %d pts\n", row.Position, row.Team, row.Played, row.Points))
		}
	}

	return b.String()
}

func (m Model) preferencesView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Preferences"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Model:       %s  %s\n", m.prefs.Model, dimStyle.Render("[m] switch")))
	b.WriteString(fmt.Sprintf("Hide scores: %v  %s\n", m.prefs.HideScores, dimStyle.Render("[h] toggle")))

	key := "(not set, using environment)"
	if m.prefs.APIKey != "" {
		key = "********"
	}
	if m.editingAPIKey {
		b.WriteString(fmt.Sprintf("API key:     %s\n", m.apiKeyInput.View()))
	} else {
		b.WriteString(fmt.Sprintf("API key:     %s  %s\n", key, dimStyle.Render("[a] edit")))
	}
	b.WriteString(dimStyle.Render("Prompt templates: edit with 'gameday prefs set schedule-prompt ...'"))
	b.WriteString("\n")

	b.WriteString("\n" + headerStyle.Render("Sports") + dimStyle.Render("  [space] toggle") + "\n")
	selected := map[string]bool{}
	for _, sport := range m.prefs.SelectedSports {
		selected[sport] = true
	}
	for i, sport := range core.AllSports {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := "[ ]"
		if selected[sport] {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, mark, sport))
	}

	return b.String()
}

// Run starts the TUI program.
func Run(s *store.Store, prefs core.Preferences) error {
	p := tea.NewProgram(NewModel(s, prefs), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
