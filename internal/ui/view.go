package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"planner/internal/calendar"
	"planner/internal/config"
	"planner/internal/model"
	"planner/internal/planner"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	todayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).Padding(0, 2, 0, 0).MarginRight(2)
)

const emptyText = "No tasks here yet."

func (m Model) View() string {
	var main string
	if m.session.State().View == planner.ViewCalendar {
		main = m.renderCalendar()
	} else {
		main = m.renderTasks()
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(m.renderSidebar()), main))
	b.WriteString("\n\n")
	if m.mode == modeAddTask || m.mode == modeNewList {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(renderHelp(m.cfg.Keys, m.session.State().View)))
	return b.String()
}

func (m Model) renderSidebar() string {
	active := m.session.Highlight()
	var b strings.Builder
	b.WriteString(navItem("Today", active == model.TodayID))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render("Lists"))
	b.WriteString("\n")
	for _, e := range m.session.Sidebar() {
		b.WriteString(navItem(e.List.Name, e.Active))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(navItem("Calendar", active == planner.CalendarKey))
	return b.String()
}

func navItem(label string, active bool) string {
	if active {
		return activeStyle.Render("▸ " + label)
	}
	return "  " + label
}

func (m Model) renderTasks() string {
	h := m.session.Header()
	var b strings.Builder
	b.WriteString(titleStyle.Render(h.Title))
	if h.Subtitle != "" {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(h.Subtitle))
	}
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(subtleStyle.Render(emptyText))
		return b.String()
	}
	for i, t := range m.tasks {
		cursor := " "
		if m.cursor == i && m.mode == modeBrowse {
			cursor = ">"
		}
		checkbox := "[ ]"
		text := t.Text
		if t.Completed {
			checkbox = "[x]"
			text = doneStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, text))
		b.WriteString("      " + subtleStyle.Render(m.session.TaskMeta(t)) + "\n")
	}
	return b.String()
}

func (m Model) renderCalendar() string {
	st := m.session.State()
	var b strings.Builder
	b.WriteString(titleStyle.Render(st.Month.Title()))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(" Su   Mo   Tu   We   Th   Fr   Sa"))
	b.WriteString("\n")

	for _, week := range calendar.Weeks(m.session.CurrentGrid()) {
		var days, marks []string
		for _, c := range week {
			if c.Blank {
				days = append(days, "    ")
				marks = append(marks, "    ")
				continue
			}
			label := fmt.Sprintf(" %2d ", c.Day)
			switch {
			case c.Day == m.day:
				label = selectedStyle.Render(label)
			case c.IsToday:
				label = todayStyle.Render(label)
			}
			days = append(days, label)
			marks = append(marks, fmt.Sprintf("%-4s", strings.Repeat("•", c.Preview)))
		}
		b.WriteString(strings.Join(days, " "))
		b.WriteString("\n")
		b.WriteString(activeStyle.Render(strings.Join(marks, " ")))
		b.WriteString("\n")
	}
	return b.String()
}

func renderHelp(k config.Keymap, view planner.View) string {
	if view == planner.ViewCalendar {
		return fmt.Sprintf("%s/%s/%s/%s move • %s/%s month • %s open day • %s back • %s today • %s quit",
			k.Left, k.Down, k.Up, k.Right, k.PrevMonth, k.NextMonth, k.Confirm, k.Cancel, k.Today, k.Quit)
	}
	return fmt.Sprintf("%s/%s move • %s add • %s priority • %s toggle • %s delete • %s/%s lists • %s new list • %s delete list • %s calendar • %s quit",
		k.Up, k.Down, k.Add, k.Priority, k.Toggle, k.Delete, k.PrevList, k.NextList, k.NewList, k.DeleteList, k.Calendar, k.Quit)
}
