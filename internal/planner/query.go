package planner

import (
	"strings"

	"planner/internal/calendar"
	"planner/internal/model"
)

const unknownListTitle = "Unknown List"

// IsToday reports whether a task belongs under the Today list: filed there
// explicitly, or dated today.
func IsToday(t model.Task, today string) bool {
	return t.ListID == model.TodayID || (t.Date != "" && t.Date == today)
}

// VisibleTasks lists the tasks for the current context, newest first.
func (s *Session) VisibleTasks() []model.Task {
	return s.TasksFor(s.state.Context, s.state.TargetID)
}

// TasksFor applies the selection rule for a context and target. Each task
// is tested once, so one satisfying several predicates appears once.
func (s *Session) TasksFor(ctx Context, target string) []model.Task {
	var match func(model.Task) bool
	switch {
	case ctx == ContextList && target == model.TodayID:
		today := s.Today()
		match = func(t model.Task) bool { return IsToday(t, today) }
	case ctx == ContextList && target != "":
		match = func(t model.Task) bool { return t.ListID == target }
	case ctx == ContextDate:
		match = func(t model.Task) bool { return t.Date == target }
	default:
		return []model.Task{}
	}

	out := []model.Task{}
	for _, t := range s.data.Tasks {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

// CountOn counts the tasks dated on date.
func (s *Session) CountOn(date string) int {
	n := 0
	for _, t := range s.data.Tasks {
		if t.Date == date {
			n++
		}
	}
	return n
}

// CalendarGrid lays out a month (0-indexed) with per-day previews. Months
// outside 0..11 roll into the neighbouring years.
func (s *Session) CalendarGrid(year, month int) []calendar.Cell {
	m := calendar.Month{Year: year, Month: month}.Add(0)
	return calendar.Grid(m, s.Today(), s.CountOn)
}

// CurrentGrid lays out the month the calendar view is showing.
func (s *Session) CurrentGrid() []calendar.Cell {
	m := s.state.Month
	return s.CalendarGrid(m.Year, m.Month)
}

// Header is the title block above the task list.
type Header struct {
	Title     string
	Subtitle  string
	Deletable bool
	Known     bool
}

func (s *Session) Header() Header {
	switch s.state.Context {
	case ContextDate:
		d, err := calendar.ParseDate(s.state.TargetID)
		if err != nil {
			return Header{Title: s.state.TargetID}
		}
		return Header{
			Title:    d.Format("January 2, 2006"),
			Subtitle: d.Format("Monday"),
			Known:    true,
		}
	default:
		list, ok := s.data.FindList(s.state.TargetID)
		if !ok {
			return Header{Title: unknownListTitle}
		}
		h := Header{Title: list.Name, Known: true, Deletable: list.Type == model.ListCustom}
		if list.ID == model.TodayID {
			h.Subtitle = s.now().Format("Mon, January 2")
		} else {
			h.Subtitle = "Custom List"
		}
		return h
	}
}

// SidebarEntry is one custom list in the navigation pane.
type SidebarEntry struct {
	List   model.List
	Active bool
}

// Sidebar lists the custom lists in creation order. Only a list shown in
// the tasks view is marked active.
func (s *Session) Sidebar() []SidebarEntry {
	showing := s.state.View == ViewTasks && s.state.Context == ContextList
	var out []SidebarEntry
	for _, l := range s.data.Lists {
		if l.Type != model.ListCustom {
			continue
		}
		out = append(out, SidebarEntry{List: l, Active: showing && l.ID == s.state.TargetID})
	}
	return out
}

// Lists returns every list, system list first as stored.
func (s *Session) Lists() []model.List {
	out := make([]model.List, len(s.data.Lists))
	copy(out, s.data.Lists)
	return out
}

// TaskMeta renders the secondary line under a task: its priority and, for
// tasks filed in a list other than Today, that list's name.
func (s *Session) TaskMeta(t model.Task) string {
	meta := strings.ToUpper(string(t.Priority))
	if t.ListID == "" || t.ListID == model.TodayID {
		return meta
	}
	if l, ok := s.data.FindList(t.ListID); ok {
		return meta + " • " + l.Name
	}
	return meta
}
