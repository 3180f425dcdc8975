// Package tui is the interactive history browser: a newest-first list of
// past audits, a detail view that re-displays the stored analysis, and a
// confirmed full clear.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kiranshivaraju/reportaudit/internal/dashboard"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

// Clearer empties the persisted history.
type Clearer interface {
	Clear(ctx context.Context) ([]models.ReportHistoryItem, error)
}

type clearedMsg struct{ err error }

// Model is the bubbletea model of the browser.
type Model struct {
	list     list.Model
	viewport viewport.Model
	store    Clearer
	loc      *time.Location

	width, height int
	detail        bool
	confirming    bool
	status        string
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f172a"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
)

// New builds a browser over items, which must already be newest first.
func New(items []models.ReportHistoryItem, store Clearer, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	l := list.New(toListItems(items, loc), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Audit History"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		list:     l,
		viewport: viewport.New(0, 0),
		store:    store,
		loc:      loc,
	}
}

func toListItems(items []models.ReportHistoryItem, loc *time.Location) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = historyItem{item: it, loc: loc}
	}
	return out
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 1
		return m, nil

	case clearedMsg:
		if msg.err != nil {
			m.status = "Clear failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "History cleared."
		m.detail = false
		return m, m.list.SetItems(nil)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" {
				return m, m.clear()
			}
			m.status = ""
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if !m.detail {
				if it, ok := m.list.SelectedItem().(historyItem); ok {
					m.openDetail(it.item)
				}
				return m, nil
			}
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
		case "C":
			if len(m.list.Items()) > 0 {
				m.confirming = true
				m.status = "Clear all history? (y/N)"
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.detail {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m *Model) openDetail(item models.ReportHistoryItem) {
	width := m.width
	if width == 0 {
		width = 80
	}
	header := titleStyle.Render(item.Timestamp.In(m.loc).Format(ShortTimestampLayout)+"  "+Badge(item.Analysis)) + "\n\n"
	body := dashboard.New(width).Render(item.Analysis, dashboard.Context{
		TechnicianName: item.TechnicianName,
		JobSiteName:    item.JobSiteName,
	})
	m.viewport.SetContent(header + body)
	m.viewport.GotoTop()
	m.detail = true
}

func (m Model) clear() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		_, err := store.Clear(context.Background())
		return clearedMsg{err: err}
	}
}

func (m Model) View() string {
	var body, help string
	if m.detail {
		body = m.viewport.View()
		help = "↑/↓ scroll • esc back • q quit"
	} else {
		body = m.list.View()
		help = "enter open • / filter • C clear all • q quit"
	}
	footer := helpStyle.Render(help)
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	return body + "\n" + footer
}

// Detail reports whether the detail view is open.
func (m Model) Detail() bool { return m.detail }

// Len returns the number of listed entries.
func (m Model) Len() int { return len(m.list.Items()) }

// Run starts the browser on the terminal and blocks until it exits.
func Run(items []models.ReportHistoryItem, store Clearer) error {
	_, err := tea.NewProgram(New(items, store, nil), tea.WithAltScreen()).Run()
	return err
}
