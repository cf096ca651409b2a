// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typerun/internal/excerpt"
	"github.com/verte-zerg/typerun/internal/ghost"
	"github.com/verte-zerg/typerun/internal/model"
	"github.com/verte-zerg/typerun/internal/session"
	"github.com/verte-zerg/typerun/internal/sink"
)

// Timer cadences. The countdown decides timeout once per second; metrics
// and ghost refreshes run faster for smooth display.
const (
	countdownInterval = time.Second
	sampleInterval    = 100 * time.Millisecond
	ghostInterval     = 50 * time.Millisecond
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	resultCardStyle  = lipgloss.NewStyle().
				Padding(1, 3).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
	ghostColor = lipgloss.Color("#2F4F6F")
)

// Generation-tagged timer messages. A message whose generation does not
// match the model's current session is stale and ignored.
type countdownTickMsg struct{ gen int }

type sampleTickMsg struct{ gen int }

type ghostTickMsg struct{ gen int }

type submitOutcomeMsg struct {
	gen     int
	outcome sink.Outcome
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	cfg      model.Config
	provider excerpt.Provider
	sink     *sink.Sink
	opponent *model.Opponent

	gen       int
	sess      *session.Session
	text      string
	ghost     *ghost.Ghost
	submitted bool
	notice    string

	width  int
	height int
}

// NewModel constructs a typing TUI model with its first session armed.
func NewModel(cfg model.Config, provider excerpt.Provider, snk *sink.Sink, opponent *model.Opponent) (*Model, error) {
	m := &Model{
		cfg:      cfg,
		provider: provider,
		sink:     snk,
		opponent: opponent,
	}
	if err := m.newSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case countdownTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.sess.Tick(time.Now())
		if m.sess.Phase() == session.PhaseFinished {
			return m, m.finishCmd()
		}
		gen := msg.gen
		return m, tickCmd(countdownInterval, func() tea.Msg { return countdownTickMsg{gen: gen} })
	case sampleTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.sess.Sample(time.Now())
		if m.sess.Phase() != session.PhaseActive {
			return m, nil
		}
		gen := msg.gen
		return m, tickCmd(sampleInterval, func() tea.Msg { return sampleTickMsg{gen: gen} })
	case ghostTickMsg:
		if msg.gen != m.gen || m.ghost == nil {
			return m, nil
		}
		if m.sess.Phase() != session.PhaseActive {
			return m, nil
		}
		// The projection itself is recomputed in View; the tick only
		// forces a redraw at the ghost cadence.
		gen := msg.gen
		return m, tickCmd(ghostInterval, func() tea.Msg { return ghostTickMsg{gen: gen} })
	case submitOutcomeMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.notice = noticeFor(msg.outcome)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab:
		// Restart discards the current session entirely; an abandoned
		// attempt never produces a result.
		if err := m.newSession(); err != nil {
			logErrf("failed to start new session: %v\n", err)
		}
		return m, nil
	case tea.KeyEnter, tea.KeyEsc:
		if m.sess.Phase() == session.PhaseFinished {
			if err := m.newSession(); err != nil {
				logErrf("failed to start new session: %v\n", err)
			}
		}
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.sess.Backspace()
		return m, nil
	case tea.KeySpace:
		return m, m.handleRunes([]rune{' '})
	case tea.KeyRunes:
		return m, m.handleRunes(msg.Runes)
	default:
		return m, nil
	}
}

func (m *Model) handleRunes(runes []rune) tea.Cmd {
	if m.sess.Phase() == session.PhaseFinished {
		return nil
	}
	wasIdle := m.sess.Phase() == session.PhaseIdle
	m.sess.Type(runes, time.Now())
	if m.sess.Phase() == session.PhaseFinished {
		return m.finishCmd()
	}
	if wasIdle && m.sess.Phase() == session.PhaseActive {
		return m.startTimers()
	}
	return nil
}

// startTimers arms the countdown, the metrics sampler, and in race mode the
// ghost refresh. All carry the current generation.
func (m *Model) startTimers() tea.Cmd {
	gen := m.gen
	cmds := []tea.Cmd{
		tickCmd(countdownInterval, func() tea.Msg { return countdownTickMsg{gen: gen} }),
		tickCmd(sampleInterval, func() tea.Msg { return sampleTickMsg{gen: gen} }),
	}
	if m.ghost != nil {
		cmds = append(cmds, tickCmd(ghostInterval, func() tea.Msg { return ghostTickMsg{gen: gen} }))
	}
	return tea.Batch(cmds...)
}

// finishCmd dispatches the at-most-once result submission. The outcome
// arrives out-of-band as a message and only updates the footer notice.
func (m *Model) finishCmd() tea.Cmd {
	if m.submitted {
		return nil
	}
	m.submitted = true
	res, ok := m.sess.Result()
	if !ok {
		return nil
	}
	gen := m.gen
	text := m.text
	identity := m.cfg.Identity
	snk := m.sink
	return func() tea.Msg {
		outcome := snk.Submit(context.Background(), res, text, identity)
		return submitOutcomeMsg{gen: gen, outcome: outcome}
	}
}

// newSession replaces the session wholesale: fresh excerpt, bumped
// generation so in-flight timer messages become no-ops, ghost re-armed only
// when race mode asks for it.
func (m *Model) newSession() error {
	text, err := m.provider.Excerpt(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load excerpt: %w", err)
	}
	m.gen++
	m.text = text
	m.sess = session.New(text, m.cfg.DurationSeconds)
	m.ghost = nil
	if m.opponent != nil {
		m.ghost = ghost.Arm(*m.opponent, len([]rune(text)))
	}
	m.submitted = false
	m.notice = ""
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.sess == nil {
		return ""
	}
	if m.sess.Phase() == session.PhaseFinished {
		return m.viewResult()
	}
	return m.viewTyping()
}

func (m *Model) viewTyping() string {
	now := time.Now()
	target := m.sess.Reference()
	input := m.sess.Input()
	cursorIndex := -1
	if len(input) < len(target) {
		cursorIndex = len(input)
	}
	ghostIndex := -1
	if m.ghost != nil && m.sess.Phase() == session.PhaseActive {
		if pos := m.ghost.Position(m.sess.Elapsed(now)); pos < len(target) {
			ghostIndex = pos
		}
	}
	styledRunes := buildStyledRunes(target, input, cursorIndex, ghostIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter(now)
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter(now time.Time) string {
	segments := []string{
		fmt.Sprintf("%ds", m.sess.Remaining(now)),
		fmt.Sprintf("%d WPM", m.sess.LiveWPM(now)),
		fmt.Sprintf("Acc %d%%", m.sess.LiveAccuracy()),
	}
	if m.ghost != nil {
		name := m.ghost.Opponent.DisplayName
		if name == "" {
			name = "ghost"
		}
		segments = append(segments, fmt.Sprintf("vs %s (%d WPM)", name, m.ghost.Opponent.WPM))
	}
	if m.notice != "" {
		segments = append(segments, m.notice)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) viewResult() string {
	res, ok := m.sess.Result()
	if !ok {
		return ""
	}
	title := "Time's up"
	if m.sess.Reason() == session.FinishCompleted {
		title = "Text completed"
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("WPM       %d", res.WPM),
		fmt.Sprintf("Accuracy  %d%%", res.Accuracy),
		fmt.Sprintf("Duration  %ds", res.DurationSeconds),
	}
	if m.ghost != nil {
		lines = append(lines, "", m.raceVerdict(res))
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}
	lines = append(lines, "", footerStyle.Render("enter: next test  tab: restart  ctrl+c: quit"))
	card := resultCardStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m *Model) raceVerdict(res model.Result) string {
	name := m.ghost.Opponent.DisplayName
	if name == "" {
		name = "ghost"
	}
	if res.WPM >= m.ghost.Opponent.WPM {
		return fmt.Sprintf("You beat %s (%d WPM)", name, m.ghost.Opponent.WPM)
	}
	return fmt.Sprintf("%s stays ahead (%d WPM)", name, m.ghost.Opponent.WPM)
}

func noticeFor(outcome sink.Outcome) string {
	switch outcome.Status {
	case sink.Saved:
		return fmt.Sprintf("saved (#%d)", outcome.ResultID)
	case sink.Skipped:
		return "not saved: set a name to keep results"
	case sink.Rejected:
		return "not saved"
	default:
		return "not saved"
	}
}

func tickCmd(interval time.Duration, msg func() tea.Msg) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return msg() })
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
