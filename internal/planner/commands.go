package planner

import (
	"fmt"
	"strings"

	"planner/internal/model"
)

// AddTask files a new task under the current context. In the Today list
// the task also carries today's date; on a calendar day it carries only
// that date. Empty text is refused.
func (s *Session) AddTask(text string, priority model.Priority) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, model.ErrEmptyText
	}
	if !priority.Valid() {
		return model.Task{}, fmt.Errorf("%w: priority %q", model.ErrInvalid, priority)
	}

	task := model.Task{
		ID:       s.nextTaskID(),
		Text:     text,
		Priority: priority,
	}
	switch s.state.Context {
	case ContextList:
		task.ListID = s.state.TargetID
		if s.state.TargetID == model.TodayID {
			task.Date = s.Today()
		}
	case ContextDate:
		task.Date = s.state.TargetID
	}
	if task.ListID == "" && task.Date == "" {
		return model.Task{}, fmt.Errorf("%w: no list or date to file under", model.ErrInvalid)
	}

	s.data.Tasks = append([]model.Task{task}, s.data.Tasks...)
	s.save()
	s.logger.Debug("task added", "id", task.ID, "list", task.ListID, "date", task.Date)
	return task, nil
}

// ToggleComplete flips a task's completion flag.
func (s *Session) ToggleComplete(id int64) (model.Task, error) {
	for i := range s.data.Tasks {
		if s.data.Tasks[i].ID == id {
			s.data.Tasks[i].Completed = !s.data.Tasks[i].Completed
			s.save()
			return s.data.Tasks[i], nil
		}
	}
	return model.Task{}, fmt.Errorf("%w: %d", model.ErrTaskNotFound, id)
}

func (s *Session) DeleteTask(id int64) error {
	for i, t := range s.data.Tasks {
		if t.ID == id {
			s.data.Tasks = append(s.data.Tasks[:i:i], s.data.Tasks[i+1:]...)
			s.save()
			return nil
		}
	}
	return fmt.Errorf("%w: %d", model.ErrTaskNotFound, id)
}

// CreateList appends a custom list and switches to it. A name whose slug
// is already taken is refused rather than shadowing the existing list.
func (s *Session) CreateList(name string) (model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.List{}, model.ErrEmptyName
	}
	id := model.Slugify(name)
	if existing, ok := s.data.FindList(id); ok {
		return model.List{}, fmt.Errorf("%w: %q is taken by %q", model.ErrListExists, id, existing.Name)
	}

	list := model.List{ID: id, Name: name, Type: model.ListCustom}
	s.data.Lists = append(s.data.Lists, list)
	s.save()
	s.logger.Info("list created", "id", id)
	_, _ = s.SwitchToContext(ContextList, id)
	return list, nil
}

// DeleteList removes a custom list together with every task filed in it.
// Tasks that only share a date are kept. The caller confirms first.
func (s *Session) DeleteList(id string) error {
	list, ok := s.data.FindList(id)
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrListNotFound, id)
	}
	if list.Type != model.ListCustom {
		return fmt.Errorf("%w: %q", model.ErrSystemList, id)
	}

	lists := make([]model.List, 0, len(s.data.Lists)-1)
	for _, l := range s.data.Lists {
		if l.ID != id {
			lists = append(lists, l)
		}
	}
	tasks := make([]model.Task, 0, len(s.data.Tasks))
	removed := 0
	for _, t := range s.data.Tasks {
		if t.ListID == id {
			removed++
			continue
		}
		tasks = append(tasks, t)
	}
	s.data.Lists = lists
	s.data.Tasks = tasks
	s.save()
	s.logger.Info("list deleted", "id", id, "tasks", removed)
	_, _ = s.SwitchToContext(ContextList, model.TodayID)
	return nil
}

// nextTaskID stamps the creation time in milliseconds, nudged forward when
// two tasks land in the same millisecond.
func (s *Session) nextTaskID() int64 {
	id := s.now().UnixMilli()
	for _, t := range s.data.Tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}
