package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"planner/internal/calendar"
	"planner/internal/config"
	"planner/internal/logging"
	"planner/internal/model"
	"planner/internal/planner"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddTask
	modeNewList
	modeConfirmTask
	modeConfirmList
)

type Model struct {
	session    *planner.Session
	cfg        config.Config
	logger     *log.Logger
	tasks      []model.Task
	cursor     int
	day        int
	mode       mode
	input      textinput.Model
	priority   model.Priority
	status     string
	pendingDel *model.Task
	width      int
}

func Run(session *planner.Session, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(New(session, cfg, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func New(session *planner.Session, cfg config.Config, logger *log.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "Task"
	ti.CharLimit = 256
	ti.Width = 40

	if logger == nil {
		logger = logging.Discard()
	}
	priority, err := model.ParsePriority(cfg.DefaultPriority)
	if err != nil {
		logger.Warn("bad default priority in config", "value", cfg.DefaultPriority)
		priority = model.PriorityMedium
	}

	m := Model{
		session:  session,
		cfg:      cfg,
		logger:   logger,
		input:    ti,
		mode:     modeBrowse,
		priority: priority,
		status:   fmt.Sprintf("Press '%s' to add, '%s' for the calendar.", cfg.Keys.Add, cfg.Keys.Calendar),
	}
	m.refresh()
	m.day = m.todayCell()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAddTask, modeNewList:
			return m.updateInput(msg.String(), msg)
		case modeConfirmTask, modeConfirmList:
			return m.updateConfirm(msg.String())
		}
		if m.session.State().View == planner.ViewCalendar {
			return m.updateCalendar(msg.String())
		}
		return m.updateTasks(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-10)
	}
	return m, nil
}

func (m Model) updateInput(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeBrowse
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		value := m.input.Value()
		if m.mode == modeNewList {
			m.createList(value)
		} else {
			m.addTask(value)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) addTask(text string) {
	task, err := m.session.AddTask(text, m.priority)
	if errors.Is(err, model.ErrEmptyText) {
		m.status = "Task cannot be empty"
		return
	}
	if err != nil {
		m.logger.Warn("add task", "err", err)
		m.status = fmt.Sprintf("add failed: %v", err)
		return
	}
	m.refresh()
	m.cursor = 0
	m.status = fmt.Sprintf("Added %q", task.Text)
	m.closeInput()
}

func (m *Model) createList(name string) {
	list, err := m.session.CreateList(name)
	switch {
	case errors.Is(err, model.ErrEmptyName):
		m.status = "List name cannot be empty"
		return
	case errors.Is(err, model.ErrListExists):
		m.status = fmt.Sprintf("A list called %q already exists", model.Slugify(name))
		return
	case err != nil:
		m.status = fmt.Sprintf("create failed: %v", err)
		return
	}
	m.refresh()
	m.cursor = 0
	m.status = fmt.Sprintf("Created list %s", list.Name)
	m.closeInput()
}

func (m *Model) closeInput() {
	m.input.SetValue("")
	m.input.Blur()
	m.mode = modeBrowse
}

func (m Model) updateTasks(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Down, "down":
		if len(m.tasks) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(m.tasks))
		}
	case k.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.tasks))
		}
	case k.Add:
		m.mode = modeAddTask
		m.input.Placeholder = "Task"
		m.input.Focus()
		m.status = fmt.Sprintf("New %s task: type and press Enter", m.priority)
	case k.Priority:
		m.priority = m.priority.Next()
		m.status = fmt.Sprintf("New tasks get %s priority", m.priority)
	case k.Toggle:
		if len(m.tasks) == 0 {
			return m, nil
		}
		task, err := m.session.ToggleComplete(m.tasks[m.cursor].ID)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.refresh()
		m.status = "Marked " + humanDone(task.Completed)
	case k.Delete:
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		m.pendingDel = &t
		m.mode = modeConfirmTask
		m.status = fmt.Sprintf("Delete %q? y/n", t.Text)
	case k.NewList:
		m.mode = modeNewList
		m.input.Placeholder = "List name"
		m.input.Focus()
		m.status = "New list: type a name and press Enter"
	case k.DeleteList:
		h := m.session.Header()
		if !h.Deletable {
			m.status = "Only custom lists can be deleted"
			return m, nil
		}
		m.mode = modeConfirmList
		m.status = fmt.Sprintf("Delete list %q and all its tasks? y/n", h.Title)
	case k.NextList:
		m.switchList(1)
	case k.PrevList:
		m.switchList(-1)
	case k.Today:
		m.switchTo(planner.ContextList, model.TodayID)
	case k.Calendar:
		m.openCalendar()
	}
	return m, nil
}

func (m Model) updateCalendar(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	days := calendar.DaysInMonth(m.session.State().Month.Year, m.session.State().Month.Month)
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Left, "left":
		m.day = clampDay(m.day-1, days)
	case k.Right, "right":
		m.day = clampDay(m.day+1, days)
	case k.Up, "up":
		m.day = clampDay(m.day-7, days)
	case k.Down, "down":
		m.day = clampDay(m.day+7, days)
	case k.PrevMonth:
		m.session.NavigateMonth(-1)
		m.day = clampDay(m.day, m.monthDays())
	case k.NextMonth:
		m.session.NavigateMonth(1)
		m.day = clampDay(m.day, m.monthDays())
	case k.Confirm:
		mo := m.session.State().Month
		m.switchTo(planner.ContextDate, calendar.FormatDate(mo.Year, mo.Month, m.day))
	case k.Cancel, k.Calendar:
		if _, err := m.session.SwitchView(planner.ViewTasks); err == nil {
			m.refresh()
		}
	case k.Today:
		m.switchTo(planner.ContextList, model.TodayID)
	}
	return m, nil
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.mode == modeConfirmList {
			m.deleteCurrentList()
		} else {
			m.deletePendingTask()
		}
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
	default:
		return m, nil
	}
	m.mode = modeBrowse
	m.pendingDel = nil
	return m, nil
}

func (m *Model) deletePendingTask() {
	if m.pendingDel == nil {
		m.status = "Nothing to delete"
		return
	}
	if err := m.session.DeleteTask(m.pendingDel.ID); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
		return
	}
	m.refresh()
	m.status = "Deleted task"
}

func (m *Model) deleteCurrentList() {
	st := m.session.State()
	if err := m.session.DeleteList(st.TargetID); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
		return
	}
	m.refresh()
	m.cursor = 0
	m.status = "Deleted list"
}

func (m *Model) switchTo(ctx planner.Context, target string) {
	if _, err := m.session.SwitchToContext(ctx, target); err != nil {
		m.status = err.Error()
		return
	}
	m.refresh()
	m.cursor = 0
	m.status = m.session.Header().Title
}

// switchList steps through Today followed by the custom lists.
func (m *Model) switchList(delta int) {
	ids := []string{model.TodayID}
	for _, e := range m.session.Sidebar() {
		ids = append(ids, e.List.ID)
	}
	st := m.session.State()
	idx := -1
	if st.Context == planner.ContextList {
		for i, id := range ids {
			if id == st.TargetID {
				idx = i
			}
		}
	}
	if idx < 0 && delta < 0 {
		idx = 0
	}
	m.switchTo(planner.ContextList, ids[wrapIndex(idx+delta, len(ids))])
}

func (m *Model) openCalendar() {
	if _, err := m.session.SwitchView(planner.ViewCalendar); err != nil {
		m.status = err.Error()
		return
	}
	m.day = clampDay(m.day, m.monthDays())
	m.status = m.session.State().Month.Title()
}

func (m *Model) refresh() {
	m.tasks = m.session.VisibleTasks()
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

func (m Model) monthDays() int {
	mo := m.session.State().Month
	return calendar.DaysInMonth(mo.Year, mo.Month)
}

// todayCell is today's day number when the calendar shows the current
// month, else the 1st.
func (m Model) todayCell() int {
	for _, c := range m.session.CurrentGrid() {
		if c.IsToday {
			return c.Day
		}
	}
	return 1
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func clampDay(day, days int) int {
	return clampCursor(day-1, days) + 1
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
