package habit

import (
	"time"

	"github.com/google/uuid"
)

// NewID generates milestone ids.
var NewID = func() string { return uuid.NewString() }

// Normalize brings a stored or client-supplied document up to the current
// shape: legacy flat task lists become a General category, nil lists become
// empty, and every milestone gets an id. It reports whether anything changed.
func Normalize(d *Document) bool {
	changed := false

	if d.Categories == nil {
		tasks := make([]Task, 0, len(d.DailyTasks))
		for _, text := range d.DailyTasks {
			tasks = append(tasks, Task{Text: text, Recurring: true})
		}
		d.Categories = []Category{{Name: "General", Icon: "📝", Tasks: tasks}}
		changed = true
	}
	if d.DailyTasks != nil {
		d.DailyTasks = nil
		changed = true
	}
	for i := range d.Categories {
		if d.Categories[i].Tasks == nil {
			d.Categories[i].Tasks = []Task{}
			changed = true
		}
	}

	if d.BadHabits == nil {
		d.BadHabits = []BadHabit{}
		changed = true
	}
	for i := range d.BadHabits {
		if d.BadHabits[i].Relapses == nil {
			d.BadHabits[i].Relapses = []Relapse{}
			changed = true
		}
	}
	if d.Milestones == nil {
		d.Milestones = []Milestone{}
		changed = true
	}
	seen := make(map[string]struct{}, len(d.Milestones))
	for i := range d.Milestones {
		id := d.Milestones[i].ID
		if _, dup := seen[id]; id == "" || dup {
			id = NewID()
			d.Milestones[i].ID = id
			changed = true
		}
		seen[id] = struct{}{}
	}
	if d.History == nil {
		d.History = []HistoryEntry{}
		changed = true
	}
	return changed
}

// DecayStreak zeroes the current streak once a full day has been missed.
// It reports whether the document changed.
func DecayStreak(d *Document, now time.Time) bool {
	if d.LastCompletedDate == nil || d.LastCompletedDate.IsZero() || d.CurrentStreak == 0 {
		return false
	}
	if DaysBetween(d.LastCompletedDate.Time, now, now.Location()) > 1 {
		d.CurrentStreak = 0
		return true
	}
	return false
}

// RefreshDaysClean recomputes the stored clean-day counters of every bad
// habit. It reports whether any counter moved.
func RefreshDaysClean(d *Document, now time.Time) bool {
	changed := false
	for i := range d.BadHabits {
		days := DaysClean(d.BadHabits[i], now)
		if d.BadHabits[i].CurrentDaysClean != days {
			d.BadHabits[i].CurrentDaysClean = days
			changed = true
		}
	}
	return changed
}
