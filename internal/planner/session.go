// Package planner is the planner's core: it owns the data graph, tracks
// what the user is looking at and answers which tasks belong on screen.
// Renderers call in, then redraw from what they get back.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"planner/internal/calendar"
	"planner/internal/logging"
	"planner/internal/model"
)

// Context says how the current target is addressed.
type Context string

const (
	ContextList Context = "list"
	ContextDate Context = "date"
)

// View is the visual mode, independent of Context.
type View string

const (
	ViewTasks    View = "tasks"
	ViewCalendar View = "calendar"
)

// CalendarKey is the sidebar key highlighted while the calendar is shown.
const CalendarKey = "calendar"

// State is what the user is currently viewing.
type State struct {
	Context  Context
	TargetID string
	View     View
	Month    calendar.Month
}

// Saver persists the whole data graph.
type Saver interface {
	Save(ctx context.Context, data model.Data) error
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces time.Now; tests pin "today" with it.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// Session is one user's planner for the lifetime of the program. It is
// driven from a single event loop and is not safe for concurrent use.
type Session struct {
	data   model.Data
	state  State
	saver  Saver
	now    func() time.Time
	logger *log.Logger
}

// New starts a session on the Today list. saver may be nil for sessions
// that should not persist.
func New(data model.Data, saver Saver, opts ...Option) *Session {
	s := &Session{
		data:   data.Clone(),
		saver:  saver,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = State{
		Context:  ContextList,
		TargetID: model.TodayID,
		View:     ViewTasks,
		Month:    calendar.MonthOf(s.now()),
	}
	return s
}

func (s *Session) State() State {
	return s.state
}

// Today is the live local date string.
func (s *Session) Today() string {
	return calendar.TodayString(s.now())
}

// SwitchToContext is the only way to point the task view at a list or a
// date. It always lands in the tasks view. A blank list target or a
// malformed date target is rejected and leaves the state alone.
func (s *Session) SwitchToContext(ctx Context, target string) (State, error) {
	switch ctx {
	case ContextList:
		if strings.TrimSpace(target) == "" {
			return s.state, fmt.Errorf("%w: empty list target", model.ErrInvalid)
		}
	case ContextDate:
		if !calendar.ValidDate(target) {
			return s.state, fmt.Errorf("%w: date %q", model.ErrInvalid, target)
		}
	default:
		return s.state, fmt.Errorf("%w: context %q", model.ErrInvalid, ctx)
	}
	s.state.Context = ctx
	s.state.TargetID = target
	s.state.View = ViewTasks
	s.logger.Debug("switch context", "context", ctx, "target", target)
	return s.state, nil
}

// SwitchView flips between tasks and calendar. Returning to tasks shows
// whatever context was last selected.
func (s *Session) SwitchView(view View) (State, error) {
	if view != ViewTasks && view != ViewCalendar {
		return s.state, fmt.Errorf("%w: view %q", model.ErrInvalid, view)
	}
	s.state.View = view
	return s.state, nil
}

// NavigateMonth moves the displayed calendar month. Context is untouched.
func (s *Session) NavigateMonth(delta int) State {
	s.state.Month = s.state.Month.Add(delta)
	return s.state
}

// Highlight names the sidebar entry to mark active: CalendarKey in the
// calendar view, the list id in list context, nothing for a date.
func (s *Session) Highlight() string {
	if s.state.View == ViewCalendar {
		return CalendarKey
	}
	if s.state.Context == ContextList {
		return s.state.TargetID
	}
	return ""
}

// Data returns a copy of the current graph.
func (s *Session) Data() model.Data {
	return s.data.Clone()
}

func (s *Session) save() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(context.Background(), s.data); err != nil {
		s.logger.Error("save failed", "err", err)
	}
}
