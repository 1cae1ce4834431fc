package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/apphound/apphound/internal/ui"
)

func columns(width int) []table.Column {
	pathWidth := width - 46
	if pathWidth < 24 {
		pathWidth = 24
	}
	return []table.Column{
		{Title: " ", Width: 3},
		{Title: "App", Width: 14},
		{Title: "Category", Width: 12},
		{Title: "Safety", Width: 8},
		{Title: "Path", Width: pathWidth},
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(ui.ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(ui.ColorText).
		Background(ui.ColorMuted).
		Bold(true)
	return s
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.entries))
	for _, entry := range m.entries {
		mark := " "
		if entry.Enabled {
			mark = ui.IconCheck
		}
		rows = append(rows, table.Row{
			mark,
			entry.AppName,
			string(entry.Category),
			string(entry.RemovalSafety),
			entry.Path,
		})
	}
	return rows
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.tbl.View())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorAccent).
		Render("  " + ui.IconPaw + " Deletion Plan Review")

	enabled := 0
	for _, entry := range m.entries {
		if entry.Enabled {
			enabled++
		}
	}
	counts := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render(fmt.Sprintf("  %d entries %s %d enabled", len(m.entries), ui.IconChevron, enabled))

	inner := lipgloss.JoinVertical(lipgloss.Left, title, counts)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorAccent).
		Width(max(m.width-2, 40)).
		Render(inner)
}

func (m Model) renderFooter() string {
	return lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render("  space toggle " + ui.IconBullet + " a enable existing " + ui.IconBullet + " n disable all " + ui.IconBullet + " enter save " + ui.IconBullet + " q cancel")
}
