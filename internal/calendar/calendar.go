// Package calendar implements the month arithmetic behind the planner's
// calendar view. Months are 0-indexed (0 = January) and weekdays start at
// 0 = Sunday.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// MaxPreview caps the number of task marks a day cell carries.
const MaxPreview = 4

const dateLayout = "2006-01-02"

var ErrBadDate = errors.New("calendar: date must be YYYY-MM-DD")

// DaysInMonth reports how many days the given month has.
func DaysInMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday reports the weekday of the 1st, 0 = Sunday.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// FormatDate renders a zero-padded date string for a 0-indexed month.
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month+1, day)
}

// TodayString formats now in its own location. It never converts to UTC,
// so a late-evening timestamp stays on the local calendar day.
func TodayString(now time.Time) string {
	return FormatDate(now.Year(), int(now.Month())-1, now.Day())
}

// ParseDate parses a strict YYYY-MM-DD string into a local-midnight time.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(dateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// ValidDate reports whether s is a well-formed calendar date string.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// Month identifies a displayed month. It deliberately carries no day so
// stepping from the 31st never spills into the month after next.
type Month struct {
	Year  int
	Month int
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month()) - 1}
}

// Add moves delta months, wrapping across year boundaries.
func (m Month) Add(delta int) Month {
	total := m.Year*12 + m.Month + delta
	year := total / 12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	return Month{Year: year, Month: month}
}

// Title renders e.g. "March 2025".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", time.Month(m.Month+1), m.Year)
}

// Cell is one slot of the month grid. Blank cells pad the first week.
type Cell struct {
	Blank   bool
	Day     int
	Date    string
	IsToday bool
	Preview int
}

// Grid lays out a month: FirstWeekday blank cells followed by one cell per
// day. counter reports how many tasks fall on a date; it may be nil.
func Grid(m Month, today string, counter func(date string) int) []Cell {
	lead := FirstWeekday(m.Year, m.Month)
	days := DaysInMonth(m.Year, m.Month)

	cells := make([]Cell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for d := 1; d <= days; d++ {
		date := FormatDate(m.Year, m.Month, d)
		n := 0
		if counter != nil {
			n = min(MaxPreview, counter(date))
		}
		cells = append(cells, Cell{
			Day:     d,
			Date:    date,
			IsToday: date == today,
			Preview: n,
		})
	}
	return cells
}

// Weeks chunks a grid into rows of seven, padding the last row with blanks.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		row := make([]Cell, 7)
		copy(row, cells[start:end])
		for i := end - start; i < 7; i++ {
			row[i] = Cell{Blank: true}
		}
		rows = append(rows, row)
	}
	return rows
}
