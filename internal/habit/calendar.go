package habit

import (
	"fmt"
	"time"
)

// DaySummary is the activity recorded for one calendar date.
type DaySummary struct {
	Date       string      `json:"date"`
	Completed  bool        `json:"completed"`
	Streak     int         `json:"streak,omitempty"`
	Deadlines  []Milestone `json:"deadlines"`
	Milestones []Milestone `json:"milestones"`
}

// HasData reports whether the day has anything worth showing.
func (s DaySummary) HasData() bool {
	return s.Completed || len(s.Deadlines) > 0 || len(s.Milestones) > 0
}

// AggregateDay collects the completion and the open deadlines and milestones
// for one date. History timestamps are compared in loc; target dates are
// matched as YYYY-MM-DD strings.
func AggregateDay(d *Document, year int, month time.Month, day int, loc *time.Location) DaySummary {
	if loc == nil {
		loc = time.UTC
	}
	key := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
	summary := DaySummary{
		Date:       key,
		Deadlines:  []Milestone{},
		Milestones: []Milestone{},
	}

	for _, entry := range d.History {
		y, m, dd := entry.Date.In(loc).Date()
		if y == year && m == month && dd == day {
			summary.Completed = true
			summary.Streak = entry.Streak
			break
		}
	}

	for _, m := range d.Milestones {
		if m.Completed || m.TargetDate != key {
			continue
		}
		if m.IsDeadline() {
			summary.Deadlines = append(summary.Deadlines, m)
		} else {
			summary.Milestones = append(summary.Milestones, m)
		}
	}
	return summary
}

// CalendarCell is one cell of a month grid. Leading cells before the first
// of the month are Empty.
type CalendarCell struct {
	Empty   bool        `json:"empty"`
	Day     int         `json:"day,omitempty"`
	IsToday bool        `json:"isToday,omitempty"`
	Summary *DaySummary `json:"summary,omitempty"`
}

type Calendar struct {
	Year         int            `json:"year"`
	Month        time.Month     `json:"month"`
	FirstWeekday time.Weekday   `json:"firstWeekday"`
	DaysInMonth  int            `json:"daysInMonth"`
	Cells        []CalendarCell `json:"cells"`
}

// DaysIn returns the number of days in the month, found as the last day of
// the range that ends before the next month starts.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthGrid lays out a month as leading empty cells (one per weekday before
// the 1st, Sunday first) followed by one cell per day. The grid is not padded
// at the end, so its length varies between months.
func MonthGrid(d *Document, year int, month time.Month, today time.Time) Calendar {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := int(first.Weekday())
	days := DaysIn(year, month)

	ty, tm, td := today.Date()
	cells := make([]CalendarCell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, CalendarCell{Empty: true})
	}
	for day := 1; day <= days; day++ {
		summary := AggregateDay(d, year, month, day, loc)
		cells = append(cells, CalendarCell{
			Day:     day,
			IsToday: ty == year && tm == month && td == day,
			Summary: &summary,
		})
	}

	return Calendar{
		Year:         year,
		Month:        month,
		FirstWeekday: first.Weekday(),
		DaysInMonth:  days,
		Cells:        cells,
	}
}

// ShiftMonth moves by delta months, rolling the year over.
func ShiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}
