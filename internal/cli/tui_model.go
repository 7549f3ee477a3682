package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/erinhale/kcal/internal/cli/formatter"
	"github.com/erinhale/kcal/internal/domain"
	"github.com/erinhale/kcal/internal/service"
)

// estimateDelay is how long the spinner animates before the estimate is
// computed. Pure theater: the estimator returns instantly, but the screen
// reads better with a beat between pressing Enter and the chips appearing.
const estimateDelay = 600 * time.Millisecond

// historyShown caps how many past estimates the screen lists.
const historyShown = 5

// tuiState tracks which interaction mode the screen is in.
type tuiState int

const (
	stateIdle         tuiState = iota // typing into the input
	stateEstimating                   // spinner running, estimate pending
	stateConfirmClear                 // huh confirm form is active
)

// estimateTickMsg fires when the animation delay elapses; the estimate runs
// on receipt.
type estimateTickMsg struct {
	raw string
}

// estimateDoneMsg carries the recorded estimate (or the error) back to the
// screen.
type estimateDoneMsg struct {
	entry *domain.Estimate
	err   error
}

// historyLoadedMsg delivers the initial history list.
type historyLoadedMsg struct {
	estimates []*domain.Estimate
	err       error
}

// tuiModel is the bubbletea model for the single estimation screen: a text
// input on top, the latest result as a chip row beneath it, and recent
// history at the bottom.
type tuiModel struct {
	app *App

	input textinput.Model
	spin  spinner.Model
	form  *huh.Form // active confirm form (nil outside stateConfirmClear)

	state tuiState
	width int
	delay time.Duration

	current  *domain.Estimate
	history  []*domain.Estimate // newest first
	advisory string

	// recallIdx walks the history list while Up/Down cycle past inputs;
	// -1 means the input holds fresh text.
	recallIdx int

	confirmClear *bool

	quitting bool
}

// newTUIModel creates the estimation screen model.
func newTUIModel(app *App) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 2 eggs, toast with butter, black coffee"
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return tuiModel{
		app:       app,
		input:     ti,
		spin:      sp,
		delay:     estimateDelay,
		recallIdx: -1,
	}
}

// runTUI starts the interactive screen and blocks until it exits.
func runTUI(app *App) error {
	p := tea.NewProgram(newTUIModel(app), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running estimation screen: %w", err)
	}
	return nil
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadHistory())
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case historyLoadedMsg:
		if msg.err == nil {
			m.history = msg.estimates
		}
		return m, nil

	case estimateTickMsg:
		return m, m.runEstimate(msg.raw)

	case estimateDoneMsg:
		return m.handleEstimateDone(msg)

	case spinner.TickMsg:
		if m.state != stateEstimating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case stateConfirmClear:
			return m.updateConfirmClear(msg)
		case stateEstimating:
			// Input is parked while the spinner runs.
			return m, nil
		default:
			return m.updateIdle(msg)
		}
	}

	if m.state == stateConfirmClear && m.form != nil {
		return m.updateConfirmClear(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}

	if m.state == stateConfirmClear && m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(formatter.Header("What did you eat?"))
	b.WriteString("\n\n")
	b.WriteString(formatter.StylePurple.Render("❯ ") + m.input.View())
	b.WriteString("\n")

	if m.state == stateEstimating {
		b.WriteString("\n" + m.spin.View() + formatter.Dim("Estimating...") + "\n")
	} else if m.current != nil {
		b.WriteString("\n" + formatter.FormatEstimate(m.current, m.width) + "\n")
	}

	if m.advisory != "" {
		b.WriteString("\n" + formatter.StyleYellow.Render(m.advisory) + "\n")
	}

	b.WriteString(m.viewHistory())
	b.WriteString("\n" + m.viewFooter())
	return b.String()
}

// ── idle mode ────────────────────────────────────────────────────────────────

func (m tuiModel) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		raw := strings.TrimSpace(m.input.Value())
		if raw == "" {
			m.advisory = "Describe what you ate first."
			return m, nil
		}
		m.advisory = ""
		m.state = stateEstimating
		return m, tea.Batch(
			m.spin.Tick,
			tea.Tick(m.delay, func(time.Time) tea.Msg { return estimateTickMsg{raw: raw} }),
		)

	case tea.KeyUp:
		m.recallOlder()
		return m, nil

	case tea.KeyDown:
		m.recallNewer()
		return m, nil

	case tea.KeyCtrlV:
		return m.pasteClipboard()

	case tea.KeyCtrlL:
		return m.startConfirmClear()

	case tea.KeyCtrlP:
		m.advisory = "Photo capture isn't available in the terminal."
		return m, nil

	case tea.KeyCtrlB:
		m.advisory = "Barcode scanning isn't available in the terminal."
		return m, nil

	default:
		m.recallIdx = -1
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// runEstimate performs the actual estimate after the animation delay.
func (m tuiModel) runEstimate(raw string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		entry, err := app.Estimates.Estimate(context.Background(), raw)
		return estimateDoneMsg{entry: entry, err: err}
	}
}

func (m tuiModel) handleEstimateDone(msg estimateDoneMsg) (tea.Model, tea.Cmd) {
	m.state = stateIdle
	if msg.err != nil {
		if errors.Is(msg.err, service.ErrEmptyInput) {
			m.advisory = "Describe what you ate first."
		} else {
			m.advisory = "Estimate failed: " + msg.err.Error()
		}
		return m, nil
	}

	m.current = msg.entry
	m.history = append([]*domain.Estimate{msg.entry}, m.history...)
	m.input.Reset()
	m.recallIdx = -1
	return m, nil
}

// ── history recall ───────────────────────────────────────────────────────────

func (m *tuiModel) recallOlder() {
	if m.recallIdx+1 >= len(m.history) {
		return
	}
	m.recallIdx++
	m.input.SetValue(m.history[m.recallIdx].RawInput)
	m.input.CursorEnd()
}

func (m *tuiModel) recallNewer() {
	if m.recallIdx < 0 {
		return
	}
	m.recallIdx--
	if m.recallIdx < 0 {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.recallIdx].RawInput)
	m.input.CursorEnd()
}

// ── clipboard ────────────────────────────────────────────────────────────────

func (m tuiModel) pasteClipboard() (tea.Model, tea.Cmd) {
	text, err := clipboard.ReadAll()
	if err != nil || strings.TrimSpace(text) == "" {
		m.advisory = "Nothing to paste."
		return m, nil
	}
	// Collapse newlines so a multi-line paste stays editable in the single
	// input; the estimator re-splits on commas anyway.
	text = strings.ReplaceAll(strings.ReplaceAll(text, "\r", ""), "\n", ", ")
	m.input.SetValue(strings.TrimSpace(m.input.Value() + text))
	m.input.CursorEnd()
	m.recallIdx = -1
	return m, nil
}

// ── clear-history confirm ────────────────────────────────────────────────────

func (m tuiModel) startConfirmClear() (tea.Model, tea.Cmd) {
	if len(m.history) == 0 {
		m.advisory = "History is already empty."
		return m, nil
	}

	v := true
	m.confirmClear = &v
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Clear all %d past estimates?", len(m.history))).
			Affirmative("Clear").
			Negative("Keep").
			Value(m.confirmClear),
	))
	m.state = stateConfirmClear
	return m, m.form.Init()
}

func (m tuiModel) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stateIdle
		m.form = nil
		m.advisory = ""
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		confirmed := m.confirmClear != nil && *m.confirmClear
		m.state = stateIdle
		m.form = nil

		if !confirmed {
			return m, cmd
		}
		if err := m.app.Estimates.Clear(context.Background()); err != nil {
			m.advisory = "Clearing history failed: " + err.Error()
			return m, cmd
		}
		m.history = nil
		m.current = nil
		m.advisory = "History cleared."
		return m, cmd
	}

	return m, cmd
}

// ── view helpers ─────────────────────────────────────────────────────────────

func (m tuiModel) viewHistory() string {
	if len(m.history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n" + formatter.Header("Recent") + "\n")
	shown := m.history
	if len(shown) > historyShown {
		shown = shown[:historyShown]
	}
	for _, e := range shown {
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			formatter.Truncate(e.RawInput, 44),
			formatter.Dim("→"),
			formatter.CalorieStyle(e.TotalCalories).Render(formatter.FormatKcal(e.TotalCalories)),
		))
	}
	return b.String()
}

func (m tuiModel) viewFooter() string {
	hints := []string{
		"enter estimate",
		"↑/↓ recall",
		"ctrl+v paste",
		"ctrl+l clear history",
		"esc quit",
	}
	unavailable := formatter.Dim("photo & barcode capture unavailable in terminal")
	return formatter.Dim(strings.Join(hints, "  ·  ")) + "\n" + unavailable
}

// loadHistory fetches past estimates for the on-screen list.
func (m tuiModel) loadHistory() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		estimates, err := app.Estimates.History(context.Background(), 0)
		return historyLoadedMsg{estimates: estimates, err: err}
	}
}
