// Package export dumps the planner's data as a human-readable YAML document.
package export

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"planner/internal/model"
)

type Document struct {
	Lists []ListSection `yaml:"lists"`
	Dates []DateSection `yaml:"dates,omitempty"`
	// Orphans are undated tasks filed under a list that no longer exists.
	Orphans []model.Task `yaml:"orphans,omitempty"`
}

type ListSection struct {
	ID    string       `yaml:"id"`
	Name  string       `yaml:"name"`
	Type  string       `yaml:"type"`
	Tasks []model.Task `yaml:"tasks,omitempty"`
}

// DateSection holds tasks scheduled on a day without belonging to a list.
type DateSection struct {
	Date  string       `yaml:"date"`
	Tasks []model.Task `yaml:"tasks"`
}

// Build groups tasks under their list, then date-only tasks by day in
// calendar order. Tasks keep their newest-first order within a group;
// tasks pointing at a list that no longer exists are grouped by date, or
// collected as orphans when they carry no date.
func Build(data model.Data) Document {
	doc := Document{}
	known := make(map[string]int, len(data.Lists))
	for i, l := range data.Lists {
		known[l.ID] = i
		doc.Lists = append(doc.Lists, ListSection{ID: l.ID, Name: l.Name, Type: string(l.Type)})
	}

	byDate := map[string][]model.Task{}
	for _, t := range data.Tasks {
		if i, ok := known[t.ListID]; ok && t.ListID != "" {
			doc.Lists[i].Tasks = append(doc.Lists[i].Tasks, t)
			continue
		}
		if t.Date != "" {
			byDate[t.Date] = append(byDate[t.Date], t)
			continue
		}
		doc.Orphans = append(doc.Orphans, t)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		doc.Dates = append(doc.Dates, DateSection{Date: d, Tasks: byDate[d]})
	}
	return doc
}

// WriteYAML writes Build(data) to w.
func WriteYAML(w io.Writer, data model.Data) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Build(data)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
