// Package model holds the planner's lists and tasks and the invariants
// that tie them together.
package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"planner/internal/calendar"
)

// TodayID is the id of the single system list.
const TodayID = "today"

var (
	ErrInvalid      = errors.New("invalid")
	ErrEmptyText    = errors.New("task text is empty")
	ErrEmptyName    = errors.New("list name is empty")
	ErrListExists   = errors.New("list already exists")
	ErrListNotFound = errors.New("list not found")
	ErrTaskNotFound = errors.New("task not found")
	ErrSystemList   = errors.New("system lists cannot be deleted")
)

type ListType string

const (
	ListSystem ListType = "system"
	ListCustom ListType = "custom"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority accepts any casing; an empty value means medium.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	for _, p := range priorities {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: priority %q", ErrInvalid, s)
}

func (p Priority) Valid() bool {
	for _, known := range priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	return p.step(1)
}

// Prev cycles in the opposite direction of Next.
func (p Priority) Prev() Priority {
	return p.step(-1)
}

func (p Priority) step(delta int) Priority {
	for i, known := range priorities {
		if p == known {
			n := len(priorities)
			return priorities[((i+delta)%n+n)%n]
		}
	}
	return PriorityMedium
}

type List struct {
	ID   string   `json:"id" yaml:"id"`
	Name string   `json:"name" yaml:"name"`
	Type ListType `json:"type" yaml:"type"`
}

type Task struct {
	ID        int64    `json:"id" yaml:"id"`
	Text      string   `json:"text" yaml:"text"`
	Priority  Priority `json:"priority" yaml:"priority"`
	Completed bool     `json:"completed" yaml:"completed"`
	ListID    string   `json:"listId,omitempty" yaml:"list_id,omitempty"`
	Date      string   `json:"date,omitempty" yaml:"date,omitempty"`
}

// Data is the whole persisted graph. Tasks are kept newest first.
type Data struct {
	Lists []List `json:"lists"`
	Tasks []Task `json:"tasks"`
}

// DefaultData is the first-run model: Today plus two starter lists.
func DefaultData() Data {
	return Data{
		Lists: []List{
			{ID: TodayID, Name: "Today", Type: ListSystem},
			{ID: "expenditures", Name: "Expenditures", Type: ListCustom},
			{ID: "work", Name: "Work", Type: ListCustom},
		},
		Tasks: []Task{},
	}
}

func (d Data) FindList(id string) (List, bool) {
	for _, l := range d.Lists {
		if l.ID == id {
			return l, true
		}
	}
	return List{}, false
}

func (d Data) FindTask(id int64) (Task, bool) {
	for _, t := range d.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Clone returns a copy that shares no slices with d.
func (d Data) Clone() Data {
	out := Data{
		Lists: make([]List, len(d.Lists)),
		Tasks: make([]Task, len(d.Tasks)),
	}
	copy(out.Lists, d.Lists)
	copy(out.Tasks, d.Tasks)
	return out
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives a list id from its display name.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Validate checks every structural invariant of the graph. All violations
// are reported, each wrapping ErrInvalid.
func (d Data) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	listIDs := make(map[string]struct{}, len(d.Lists))
	systems := 0
	for _, l := range d.Lists {
		if strings.TrimSpace(l.ID) == "" {
			invalid("list %q has no id", l.Name)
			continue
		}
		if _, dup := listIDs[l.ID]; dup {
			invalid("duplicate list id %q", l.ID)
		}
		listIDs[l.ID] = struct{}{}
		switch l.Type {
		case ListSystem:
			systems++
			if l.ID != TodayID {
				invalid("unexpected system list %q", l.ID)
			}
		case ListCustom:
		default:
			invalid("list %q has type %q", l.ID, l.Type)
		}
	}
	if _, ok := listIDs[TodayID]; !ok || systems != 1 {
		invalid("exactly one system list %q is required", TodayID)
	}

	taskIDs := make(map[int64]struct{}, len(d.Tasks))
	for _, t := range d.Tasks {
		if _, dup := taskIDs[t.ID]; dup {
			invalid("duplicate task id %d", t.ID)
		}
		taskIDs[t.ID] = struct{}{}
		if strings.TrimSpace(t.Text) == "" {
			invalid("task %d has empty text", t.ID)
		}
		if !t.Priority.Valid() {
			invalid("task %d has priority %q", t.ID, t.Priority)
		}
		if t.ListID == "" && t.Date == "" {
			invalid("task %d has neither list nor date", t.ID)
		}
		if t.Date != "" && !calendar.ValidDate(t.Date) {
			invalid("task %d has date %q", t.ID, t.Date)
		}
	}
	return errors.Join(errs...)
}
