// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typerun/internal/model"
	"github.com/verte-zerg/typerun/internal/stats"
	"github.com/verte-zerg/typerun/internal/store"
)

const (
	tabOverview = iota
	tabResults
)

const plotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	results []model.StoredResult
	summary stats.Summary
	errMsg  string

	tabs      []string
	activeTab int

	resultTable table.Model
	historyView viewport.Model
	showHistory bool

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Results"},
	}
	m.historyView = viewport.New(0, 0)
	m.initResultTable()
	m.refresh()
	return m
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
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.showHistory {
			if msg.String() == "esc" || msg.String() == "enter" {
				m.showHistory = false
				return m, nil
			}
			var cmd tea.Cmd
			m.historyView, cmd = m.historyView.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "enter":
			if m.activeTab == tabResults {
				m.openHistory()
			}
			return m, nil
		}
		if m.activeTab == tabResults {
			var cmd tea.Cmd
			m.resultTable, cmd = m.resultTable.Update(msg)
			return m, cmd
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	nav := m.renderNav()
	var content string
	switch {
	case m.errMsg != "":
		content = errorStyle.Render(m.errMsg)
	case m.showHistory:
		content = m.historyView.View()
	case m.activeTab == tabOverview:
		content = m.renderOverview()
	default:
		content = m.renderResults()
	}
	help := helpStyle.Render("←/→: tabs  enter: history  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, nav, content, help)
}

func (m *Model) refresh() {
	results, err := m.store.ListResults(context.Background(), m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load results: %v", err)
		return
	}
	m.errMsg = ""
	m.results = results
	m.summary = stats.Summarize(results)
	m.fillResultTable()
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
}

func (m *Model) renderNav() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		style := inactiveNavStyle
		if i == m.activeTab {
			style = activeNavStyle
		}
		parts = append(parts, style.Render(tab))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderOverview() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Tests", fmt.Sprintf("%d", m.summary.Count)),
		renderCard("Avg WPM", fmt.Sprintf("%.1f", m.summary.AvgWPM)),
		renderCard("Best WPM", fmt.Sprintf("%d", m.summary.BestWPM)),
		renderCard("Avg Accuracy", fmt.Sprintf("%.1f%%", m.summary.AvgAccuracy)),
	)
	if len(m.results) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, cards, "", "No results yet.")
	}
	series := stats.MovingAverage(stats.WPMSeries(m.results), m.cfg.CurveWindow)
	var plot bytes.Buffer
	width := 0
	if m.width > 0 {
		width = stats.PlotWidthFor(m.width)
	}
	if err := stats.PlotWPM(&plot, "WPM over tests", series, width, plotHeight); err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, cards, "", errorStyle.Render(err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards, "", plot.String())
}

func renderCard(title, value string) string {
	inner := lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(title),
		cardValueStyle.Render(value),
	)
	return cardStyle.Render(inner)
}

func (m *Model) initResultTable() {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "When", Width: 16},
		{Title: "WPM", Width: 5},
		{Title: "Acc", Width: 5},
		{Title: "Dur", Width: 5},
	}
	m.resultTable = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
}

func (m *Model) fillResultTable() {
	rows := make([]table.Row, 0, len(m.results))
	// Newest first for browsing.
	for i := len(m.results) - 1; i >= 0; i-- {
		r := m.results[i]
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.ID),
			r.EndedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%ds", r.DurationSeconds),
		})
	}
	m.resultTable.SetRows(rows)
}

func (m *Model) renderResults() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	return m.resultTable.View()
}

// openHistory loads the selected result's per-second WPM curve into the
// viewport.
func (m *Model) openHistory() {
	row := m.resultTable.SelectedRow()
	if row == nil {
		return
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return
	}
	samples, err := m.store.ResultSamples(context.Background(), id)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load samples: %v", err)
		return
	}
	var plot bytes.Buffer
	if len(samples) == 0 {
		plot.WriteString("No per-second history for this result.")
	} else {
		width := 0
		if m.width > 0 {
			width = stats.PlotWidthFor(m.width)
		}
		title := fmt.Sprintf("Result #%d WPM history", id)
		if err := stats.PlotWPM(&plot, title, stats.SampleSeries(samples), width, plotHeight); err != nil {
			m.errMsg = fmt.Sprintf("failed to plot samples: %v", err)
			return
		}
	}
	m.historyView.SetContent(plot.String())
	m.showHistory = true
}

func (m *Model) updateLayout() {
	if m.height > 8 {
		m.resultTable.SetHeight(m.height - 8)
		m.historyView.Width = m.width
		m.historyView.Height = m.height - 6
	}
}
