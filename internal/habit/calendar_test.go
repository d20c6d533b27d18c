package habit

import (
	"testing"
	"time"
)

func TestMonthGridLeadingOffsetWithoutTrailingPadding(t *testing.T) {
	// April 2026 starts on a Wednesday and has 30 days.
	cal := MonthGrid(New(), 2026, time.April, day(2026, time.April, 16))

	if cal.FirstWeekday != time.Wednesday {
		t.Fatalf("expected Wednesday, got %s", cal.FirstWeekday)
	}
	if cal.DaysInMonth != 30 || len(cal.Cells) != 33 {
		t.Fatalf("expected 30 days in 33 cells, got %d in %d", cal.DaysInMonth, len(cal.Cells))
	}
	for i := 0; i < 3; i++ {
		if !cal.Cells[i].Empty {
			t.Fatalf("expected cell %d to be empty", i)
		}
	}
	if cal.Cells[3].Day != 1 || cal.Cells[len(cal.Cells)-1].Day != 30 {
		t.Fatal("expected days 1..30 after the offset")
	}
	if !cal.Cells[3+15].IsToday {
		t.Fatal("expected April 16 to be flagged as today")
	}
}

func TestDaysInHandlesLeapYears(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2026, time.February, 28},
		{2026, time.December, 31},
		{2026, time.November, 30},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestAggregateDay(t *testing.T) {
	doc := New()
	doc.History = []HistoryEntry{
		{Date: At(time.Date(2026, time.March, 3, 21, 0, 0, 0, time.UTC)), Streak: 7},
	}
	doc.Milestones = []Milestone{
		{ID: "d1", Type: TypeDeadline, Text: "tax", TargetDate: "2026-03-03"},
		{ID: "d2", Type: TypeDeadline, Text: "done", TargetDate: "2026-03-03", Completed: true},
		{ID: "m1", Type: TypeMilestone, Text: "100 days", TargetDate: "2026-03-03"},
		{ID: "m2", Type: TypeMilestone, Text: "other", TargetDate: "2026-03-04"},
	}

	s := AggregateDay(doc, 2026, time.March, 3, time.UTC)
	if !s.Completed || s.Streak != 7 {
		t.Fatalf("expected completed day with streak 7, got %+v", s)
	}
	if len(s.Deadlines) != 1 || s.Deadlines[0].ID != "d1" {
		t.Fatalf("expected only the open deadline, got %+v", s.Deadlines)
	}
	if len(s.Milestones) != 1 || s.Milestones[0].ID != "m1" {
		t.Fatalf("expected only m1, got %+v", s.Milestones)
	}

	empty := AggregateDay(doc, 2026, time.March, 5, time.UTC)
	if empty.HasData() {
		t.Fatalf("expected no data on March 5, got %+v", empty)
	}
}

func TestAggregateDayUsesLocationForHistory(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	doc := New()
	doc.History = []HistoryEntry{{Date: At(time.Date(2026, time.March, 4, 2, 0, 0, 0, time.UTC)), Streak: 1}}

	if !AggregateDay(doc, 2026, time.March, 3, loc).Completed {
		t.Fatal("expected 02:00 UTC on the 4th to count for the 3rd at UTC-5")
	}
	if AggregateDay(doc, 2026, time.March, 4, loc).Completed {
		t.Fatal("expected the 4th to be empty at UTC-5")
	}
}

func TestShiftMonth(t *testing.T) {
	y, m := ShiftMonth(2026, time.December, 1)
	if y != 2027 || m != time.January {
		t.Fatalf("expected 2027-01, got %d-%02d", y, m)
	}
	y, m = ShiftMonth(2026, time.January, -1)
	if y != 2025 || m != time.December {
		t.Fatalf("expected 2025-12, got %d-%02d", y, m)
	}
}
