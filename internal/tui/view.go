package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskops/taskboard/internal/core/task"
)

const (
	minColumnWidth = 16
	defaultWidth   = 80
	defaultHeight  = 24
)

// View renders the board.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}

	header := headerStyle.Render("📋 Task Board")

	// Each column draws a two-cell border around its content box.
	colWidth := max(w/len(task.Statuses)-2, minColumnWidth)
	colHeight := max(h-6, 3)

	columns := make([]string, 0, len(task.Statuses))
	for i, status := range task.Statuses {
		columns = append(columns, m.renderColumn(i, status, colWidth, colHeight))
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	statusLine := ""
	if m.status != "" {
		if m.statErr {
			statusLine = errorLineStyle.Render(m.status)
		} else {
			statusLine = statusLineStyle.Render(m.status)
		}
	}

	helpView := m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left, header, boardView, statusLine, helpView)
}

func (m Model) renderColumn(i int, status task.Status, width, height int) string {
	tasks := m.columns[i]

	lines := make([]string, 0, len(tasks)+2)
	lines = append(lines, columnTitleStyle.Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks))))
	lines = append(lines, "")

	if len(tasks) == 0 {
		lines = append(lines, emptyColumnStyle.Render("no tasks"))
	}

	for j, t := range tasks {
		label := ansi.Truncate(fmt.Sprintf("#%d %s", t.ID, t.Title), width-4, "…")
		if i == m.col && j == m.row {
			lines = append(lines, selectedItemStyle.Render("┃ "+label))
		} else {
			lines = append(lines, itemStyle.Render("  "+label))
		}
	}

	style := columnStyle
	if i == m.col {
		style = activeColumnStyle
	}

	return style.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}
