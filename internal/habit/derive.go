package habit

import (
	"sort"
	"time"
)

// CanCompleteToday reports whether no completion has been recorded on
// today's calendar date.
func CanCompleteToday(d *Document, today time.Time) bool {
	if d.LastCompletedDate == nil || d.LastCompletedDate.IsZero() {
		return true
	}
	return !SameDay(d.LastCompletedDate.Time, today, today.Location())
}

// AllTasksComplete is true when at least one task exists and every task is
// checked off.
func AllTasksComplete(d *Document) bool {
	total, completed := d.TaskCounts()
	return total > 0 && completed == total
}

// CanCompleteDay gates the day-completion action.
func CanCompleteDay(d *Document, today time.Time) bool {
	return CanCompleteToday(d, today) && AllTasksComplete(d)
}

// StreakAtRisk drives the "you have not completed today" warning.
func StreakAtRisk(d *Document, today time.Time) bool {
	return d.CurrentStreak > 0 && CanCompleteToday(d, today)
}

type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyDueToday Urgency = "due-today"
	UrgencyUrgent   Urgency = "urgent"
	UrgencySoon     Urgency = "soon"
	UrgencyNormal   Urgency = "normal"
)

// ClassifyUrgency buckets the number of days left until a deadline.
func ClassifyUrgency(daysLeft int) Urgency {
	switch {
	case daysLeft < 0:
		return UrgencyOverdue
	case daysLeft == 0:
		return UrgencyDueToday
	case daysLeft <= 3:
		return UrgencyUrgent
	case daysLeft <= 7:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

// DaysLeft counts calendar days from today until targetDate. ok is false for
// an unparseable date.
func DaysLeft(targetDate string, today time.Time) (days int, ok bool) {
	loc := today.Location()
	target, ok := ParseDate(targetDate, loc)
	if !ok {
		return 0, false
	}
	return DaysBetween(today, target, loc), true
}

// DeadlineView is a deadline as displayed, carrying its position in the
// combined milestones array and its id so mutations never use a filtered
// position.
type DeadlineView struct {
	Index int `json:"index"`
	Milestone
	DaysLeft  int     `json:"daysLeft"`
	Urgency   Urgency `json:"urgency"`
	ValidDate bool    `json:"validDate"`
}

type MilestoneView struct {
	Index     int `json:"index"`
	Milestone
	DaysLeft  int     `json:"daysLeft"`
	Urgency   Urgency `json:"urgency"`
	ValidDate bool    `json:"validDate"`
}

// Partition splits the combined array into deadline and milestone views in
// one pass, keeping array order.
func Partition(d *Document, today time.Time) (deadlines []DeadlineView, milestones []MilestoneView) {
	deadlines = []DeadlineView{}
	milestones = []MilestoneView{}
	for i, m := range d.Milestones {
		days, ok := DaysLeft(m.TargetDate, today)
		urgency := UrgencyNormal
		if ok {
			urgency = ClassifyUrgency(days)
		}
		if m.IsDeadline() {
			deadlines = append(deadlines, DeadlineView{Index: i, Milestone: m, DaysLeft: days, Urgency: urgency, ValidDate: ok})
		} else {
			milestones = append(milestones, MilestoneView{Index: i, Milestone: m, DaysLeft: days, Urgency: urgency, ValidDate: ok})
		}
	}
	return deadlines, milestones
}

// Deadlines returns deadline views sorted by target date. Equal dates keep
// their array order; unparseable dates sort last.
func Deadlines(d *Document, today time.Time) []DeadlineView {
	deadlines, _ := Partition(d, today)
	sort.SliceStable(deadlines, func(i, j int) bool {
		a, b := deadlines[i], deadlines[j]
		if a.ValidDate != b.ValidDate {
			return a.ValidDate
		}
		return a.DaysLeft < b.DaysLeft
	})
	return deadlines
}

// Milestones returns the non-deadline entries in array order.
func Milestones(d *Document, today time.Time) []MilestoneView {
	_, milestones := Partition(d, today)
	return milestones
}

// DaysClean is the number of whole days since the habit's clean streak began.
func DaysClean(h BadHabit, now time.Time) int {
	if h.CleanSince.IsZero() || now.Before(h.CleanSince.Time) {
		return 0
	}
	return int(now.Sub(h.CleanSince.Time).Hours() / 24)
}

// CompletionRate is the share of the last seven days that were completed,
// as a whole percentage, based on the number of recent history entries.
func CompletionRate(d *Document) int {
	n := len(d.History)
	if n > 7 {
		n = 7
	}
	return (n*100 + 3) / 7
}

// RecentHistory returns up to n of the newest history entries, newest first.
func RecentHistory(d *Document, n int) []HistoryEntry {
	if n > len(d.History) {
		n = len(d.History)
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(d.History) - 1; i >= len(d.History)-n; i-- {
		out = append(out, d.History[i])
	}
	return out
}

// HabitView is a bad habit with its live clean-day count.
type HabitView struct {
	Index         int    `json:"index"`
	Name          string `json:"name"`
	DaysClean     int    `json:"daysClean"`
	LongestStreak int    `json:"longestStreak"`
	RelapseCount  int    `json:"relapseCount"`
}

// View is everything a renderer needs, derived from one document.
type View struct {
	Today              string          `json:"today"`
	CurrentStreak      int             `json:"currentStreak"`
	LongestStreak      int             `json:"longestStreak"`
	TotalDaysCompleted int             `json:"totalDaysCompleted"`
	CompletedToday     bool            `json:"completedToday"`
	CanCompleteToday   bool            `json:"canCompleteToday"`
	AllTasksComplete   bool            `json:"allTasksComplete"`
	CanCompleteDay     bool            `json:"canCompleteDay"`
	StreakAtRisk       bool            `json:"streakAtRisk"`
	TasksTotal         int             `json:"tasksTotal"`
	TasksCompleted     int             `json:"tasksCompleted"`
	Deadlines          []DeadlineView  `json:"deadlines"`
	Milestones         []MilestoneView `json:"milestones"`
	BadHabits          []HabitView     `json:"badHabits"`
	CompletionRate     int             `json:"completionRate"`
	RecentHistory      []HistoryEntry  `json:"recentHistory"`
	EndGoal            string          `json:"endGoal"`
	Motivation         *Motivation     `json:"motivation,omitempty"`
}

// DeriveView computes the full derived state at now. Calendar dates are
// taken in now's location.
func DeriveView(d *Document, now time.Time) View {
	total, completed := d.TaskCounts()
	canToday := CanCompleteToday(d, now)

	habits := make([]HabitView, 0, len(d.BadHabits))
	for i, h := range d.BadHabits {
		habits = append(habits, HabitView{
			Index:         i,
			Name:          h.Name,
			DaysClean:     DaysClean(h, now),
			LongestStreak: h.LongestStreak,
			RelapseCount:  len(h.Relapses),
		})
	}

	return View{
		Today:              DateKey(now, now.Location()),
		CurrentStreak:      d.CurrentStreak,
		LongestStreak:      d.LongestStreak,
		TotalDaysCompleted: d.TotalDaysCompleted,
		CompletedToday:     !canToday,
		CanCompleteToday:   canToday,
		AllTasksComplete:   total > 0 && completed == total,
		CanCompleteDay:     CanCompleteDay(d, now),
		StreakAtRisk:       StreakAtRisk(d, now),
		TasksTotal:         total,
		TasksCompleted:     completed,
		Deadlines:          Deadlines(d, now),
		Milestones:         Milestones(d, now),
		BadHabits:          habits,
		CompletionRate:     CompletionRate(d),
		RecentHistory:      RecentHistory(d, 10),
		EndGoal:            d.EndGoal,
		Motivation:         d.DailyMotivation,
	}
}
