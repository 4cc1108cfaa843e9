package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/config"
	"planner/internal/model"
	"planner/internal/planner"
)

func testConfig() config.Config {
	return config.Config{
		DefaultPriority: "high",
		Keys: config.Keymap{
			Quit: "q", Add: "a", Up: "k", Down: "j", Left: "h", Right: "l",
			Toggle: " ", Delete: "d", Confirm: "enter", Cancel: "esc",
			Priority: "p", Calendar: "c", Today: "t", NextList: "tab",
			PrevList: "shift+tab", NewList: "n", DeleteList: "D",
			PrevMonth: "[", NextMonth: "]",
		},
	}
}

func newTestModel(t *testing.T) (Model, *planner.Session) {
	t.Helper()
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	session := planner.New(model.DefaultData(), nil, planner.WithClock(func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}))
	return New(session, testConfig(), nil), session
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestAddTaskFromTodayView(t *testing.T) {
	m, session := newTestModel(t)

	m = press(t, m, "a", "B", "u", "y", " ", "m", "i", "l", "k", "enter")

	require.Len(t, m.tasks, 1)
	task := m.tasks[0]
	assert.Equal(t, "Buy milk", task.Text)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, model.TodayID, task.ListID)
	assert.Equal(t, "2025-03-10", task.Date)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, session.VisibleTasks(), m.tasks)
	assert.Contains(t, m.View(), "Buy milk")
}

func TestEmptyTaskIsRefused(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "a", "enter")
	assert.Empty(t, m.tasks)
	assert.Equal(t, modeAddTask, m.mode)
	assert.Equal(t, "Task cannot be empty", m.status)

	m = press(t, m, "esc")
	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.View(), emptyText)
}

func TestToggleAndDeleteWithConfirmation(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "a", "x", "enter", " ")
	require.Len(t, m.tasks, 1)
	assert.True(t, m.tasks[0].Completed)

	m = press(t, m, "d", "n")
	assert.Len(t, m.tasks, 1)

	m = press(t, m, "d", "y")
	assert.Empty(t, m.tasks)
	assert.Equal(t, modeBrowse, m.mode)
}

func TestCreateAndDeleteList(t *testing.T) {
	m, session := newTestModel(t)

	m = press(t, m, "n", "H", "o", "m", "e", "enter")
	assert.Equal(t, "home", session.State().TargetID)

	m = press(t, m, "a", "x", "enter")
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "home", m.tasks[0].ListID)

	m = press(t, m, "D", "y")
	assert.Equal(t, model.TodayID, session.State().TargetID)
	_, ok := session.Data().FindList("home")
	assert.False(t, ok)
	assert.Empty(t, session.Data().Tasks)
}

func TestDeleteListRefusedForToday(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "D")
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "Only custom lists can be deleted", m.status)
}

func TestCycleLists(t *testing.T) {
	m, session := newTestModel(t)
	m = press(t, m, "tab")
	assert.Equal(t, "expenditures", session.State().TargetID)
	press(t, m, "tab", "tab")
	assert.Equal(t, model.TodayID, session.State().TargetID)
}

func TestCalendarOpensDay(t *testing.T) {
	m, session := newTestModel(t)

	m = press(t, m, "c")
	assert.Equal(t, planner.ViewCalendar, session.State().View)
	assert.Equal(t, 10, m.day)
	assert.Contains(t, m.View(), "March 2025")

	m = press(t, m, "l", "j", "enter")
	st := session.State()
	assert.Equal(t, planner.ViewTasks, st.View)
	assert.Equal(t, planner.ContextDate, st.Context)
	assert.Equal(t, "2025-03-18", st.TargetID)

	m = press(t, m, "a", "x", "enter")
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "2025-03-18", m.tasks[0].Date)
	assert.Empty(t, m.tasks[0].ListID)
}

func TestCalendarMonthNavigation(t *testing.T) {
	m, session := newTestModel(t)
	m = press(t, m, "c", "]", "]")
	assert.Equal(t, 4, session.State().Month.Month)
	assert.Contains(t, m.View(), "May 2025")

	m = press(t, m, "esc")
	assert.Equal(t, planner.ViewTasks, session.State().View)
	assert.Equal(t, model.TodayID, session.State().TargetID)
}
