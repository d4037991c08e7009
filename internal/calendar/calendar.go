// Package calendar renders the unified event feed into month, week, day and
// agenda grids. Everything here is a pure function over an event slice: the
// dashboard recomputes the whole view on every request instead of patching
// cells incrementally.
package calendar

import (
	"fmt"
	"time"

	"campushub/pkg/model"
)

type View string

const (
	ViewMonth  View = "month"
	ViewWeek   View = "week"
	ViewDay    View = "day"
	ViewAgenda View = "agenda"
)

func (v View) Valid() bool {
	switch v {
	case ViewMonth, ViewWeek, ViewDay, ViewAgenda:
		return true
	}
	return false
}

// DayCell is one rendered day of the grid. OutOfMonth marks padding cells in
// the month view; their events are still populated.
type DayCell struct {
	Date       string                 `json:"date"`
	Weekday    string                 `json:"weekday"`
	OutOfMonth bool                   `json:"out_of_month,omitempty"`
	Events     []*model.CalendarEvent `json:"events"`
}

const dateLayout = "2006-01-02"

// Render builds the day cells for the view anchored at cursor. The month view
// is always a fixed 6x7 grid starting on the Monday on or before the 1st, so
// clients can lay it out without counting rows.
func Render(events []*model.CalendarEvent, view View, cursor time.Time) []DayCell {
	byDay := GroupByDay(events)

	var start time.Time
	var days int
	switch view {
	case ViewWeek:
		start = mondayOf(cursor)
		days = 7
	case ViewDay:
		start = truncateToDay(cursor)
		days = 1
	case ViewAgenda:
		start = mondayOf(cursor)
		days = 14
	default:
		firstOfMonth := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location())
		start = mondayOf(firstOfMonth)
		days = 42
	}

	cells := make([]DayCell, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		iso := day.Format(dateLayout)
		cells = append(cells, DayCell{
			Date:       iso,
			Weekday:    day.Weekday().String(),
			OutOfMonth: view == ViewMonth && day.Month() != cursor.Month(),
			Events:     byDay[iso],
		})
	}
	return cells
}

// GroupByDay buckets events by their ISO date. Events with an unparseable
// date are dropped rather than surfacing a broken cell.
func GroupByDay(events []*model.CalendarEvent) map[string][]*model.CalendarEvent {
	byDay := make(map[string][]*model.CalendarEvent, len(events))
	for _, event := range events {
		if _, err := time.Parse(dateLayout, event.Date); err != nil {
			continue
		}
		byDay[event.Date] = append(byDay[event.Date], event)
	}
	return byDay
}

// SlotsFor enumerates the half-hour slot times inside the period's window,
// inclusive of both bounds.
func SlotsFor(period model.Period) []string {
	window, ok := period.Window()
	if !ok {
		return nil
	}

	var slots []string
	var hour, minute int
	fmt.Sscanf(window.Min, "%d:%d", &hour, &minute)
	for {
		slot := fmt.Sprintf("%02d:%02d", hour, minute)
		if slot > window.Max {
			break
		}
		slots = append(slots, slot)
		minute += 30
		if minute >= 60 {
			minute = 0
			hour++
		}
	}
	return slots
}

// Next advances the cursor by one unit of the active view.
func Next(view View, cursor time.Time) time.Time {
	switch view {
	case ViewWeek:
		return cursor.AddDate(0, 0, 7)
	case ViewDay:
		return cursor.AddDate(0, 0, 1)
	case ViewAgenda:
		return cursor.AddDate(0, 0, 14)
	default:
		return cursor.AddDate(0, 1, 0)
	}
}

// Previous moves the cursor back by one unit of the active view.
func Previous(view View, cursor time.Time) time.Time {
	switch view {
	case ViewWeek:
		return cursor.AddDate(0, 0, -7)
	case ViewDay:
		return cursor.AddDate(0, 0, -1)
	case ViewAgenda:
		return cursor.AddDate(0, 0, -14)
	default:
		return cursor.AddDate(0, -1, 0)
	}
}

// Today returns the current day in the given location, truncated to midnight.
func Today(loc *time.Location) time.Time {
	return truncateToDay(time.Now().In(loc))
}

func mondayOf(t time.Time) time.Time {
	t = truncateToDay(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
