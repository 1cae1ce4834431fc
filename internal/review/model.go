// Package review is the interactive deletion plan editor: a scrollable
// table of plan entries where individual removals can be toggled before
// the plan is saved.
package review

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apphound/apphound/internal/plan"
)

// Model is the bubbletea Model for the plan review screen.
type Model struct {
	entries  []plan.Entry
	planID   string
	tbl      table.Model
	width    int
	height   int
	saved    bool
	quitting bool
}

// New creates a review model over the given plan. The plan itself is not
// mutated until Plan is called on the finished model.
func New(p plan.Plan) Model {
	entries := make([]plan.Entry, len(p.Entries))
	copy(entries, p.Entries)

	tbl := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(18),
	)
	tbl.SetStyles(tableStyles())

	m := Model{
		entries: entries,
		planID:  p.ID,
		tbl:     tbl,
		width:   80,
		height:  24,
	}
	m.tbl.SetRows(m.rows())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tbl.SetColumns(columns(m.width))
		m.tbl.SetHeight(max(m.height-8, 4))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter", "s":
			m.saved = true
			m.quitting = true
			return m, tea.Quit

		case " ":
			cursor := m.tbl.Cursor()
			if cursor >= 0 && cursor < len(m.entries) {
				m.entries[cursor].Enabled = !m.entries[cursor].Enabled
				m.tbl.SetRows(m.rows())
			}
			return m, nil

		case "a":
			for i := range m.entries {
				m.entries[i].Enabled = m.entries[i].Exists
			}
			m.tbl.SetRows(m.rows())
			return m, nil

		case "n":
			for i := range m.entries {
				m.entries[i].Enabled = false
			}
			m.tbl.SetRows(m.rows())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// Saved reports whether the user confirmed the edited plan.
func (m Model) Saved() bool {
	return m.saved
}

// Plan returns the plan with the edited enabled flags applied.
func (m Model) Plan(original plan.Plan) plan.Plan {
	original.Entries = make([]plan.Entry, len(m.entries))
	copy(original.Entries, m.entries)
	return original
}

// Run opens the review screen and returns the edited plan and whether it
// was saved.
func Run(p plan.Plan) (plan.Plan, bool, error) {
	program := tea.NewProgram(New(p), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return p, false, err
	}
	m, ok := final.(Model)
	if !ok || !m.Saved() {
		return p, false, nil
	}
	return m.Plan(p), true, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
