package habit

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestClassifyUrgencyBoundaries(t *testing.T) {
	cases := []struct {
		daysLeft int
		want     Urgency
	}{
		{-1, UrgencyOverdue},
		{0, UrgencyDueToday},
		{1, UrgencyUrgent},
		{3, UrgencyUrgent},
		{4, UrgencySoon},
		{7, UrgencySoon},
		{8, UrgencyNormal},
		{-30, UrgencyOverdue},
		{365, UrgencyNormal},
	}
	for _, tc := range cases {
		if got := ClassifyUrgency(tc.daysLeft); got != tc.want {
			t.Errorf("ClassifyUrgency(%d) = %s, want %s", tc.daysLeft, got, tc.want)
		}
	}
}

func TestDaysLeftIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)

	days, ok := DaysLeft("2026-03-10", today)
	if !ok || days != 0 {
		t.Fatalf("expected 0 days left for today, got %d (ok=%v)", days, ok)
	}
	days, _ = DaysLeft("2026-03-11", today)
	if days != 1 {
		t.Fatalf("expected 1 day left, got %d", days)
	}
	days, _ = DaysLeft("2026-03-07", today)
	if days != -3 {
		t.Fatalf("expected -3 days left, got %d", days)
	}
	if _, ok := DaysLeft("next tuesday", today); ok {
		t.Fatal("expected unparseable date to report ok=false")
	}
}

func TestDaysLeftAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	today := time.Date(2026, time.March, 7, 12, 0, 0, 0, loc)
	days, _ := DaysLeft("2026-03-09", today)
	if days != 2 {
		t.Fatalf("expected 2 days across spring-forward, got %d", days)
	}
}

func TestDeadlineDueTodayScenario(t *testing.T) {
	today := day(2026, time.May, 4)
	doc := New()
	if _, err := AddDeadline(doc, NewDeadline{Text: "Essay", TargetDate: "2026-05-04"}); err != nil {
		t.Fatalf("add deadline: %v", err)
	}

	views := Deadlines(doc, today)
	if len(views) != 1 {
		t.Fatalf("expected 1 deadline, got %d", len(views))
	}
	if views[0].DaysLeft != 0 || views[0].Urgency != UrgencyDueToday {
		t.Fatalf("expected daysLeft=0 due-today, got %d %s", views[0].DaysLeft, views[0].Urgency)
	}
}

func TestCanCompleteToday(t *testing.T) {
	today := day(2026, time.June, 15)
	doc := New()
	if !CanCompleteToday(doc, today) {
		t.Fatal("expected eligibility with no previous completion")
	}

	doc.LastCompletedDate = Ptr(time.Date(2026, time.June, 15, 0, 5, 0, 0, time.UTC))
	if CanCompleteToday(doc, today) {
		t.Fatal("expected no eligibility after completing earlier today")
	}

	doc.LastCompletedDate = Ptr(time.Date(2026, time.June, 14, 23, 59, 0, 0, time.UTC))
	if !CanCompleteToday(doc, today) {
		t.Fatal("expected eligibility when last completion was yesterday")
	}
}

func TestAllTasksCompleteRequiresAtLeastOneTask(t *testing.T) {
	doc := New()
	if AllTasksComplete(doc) {
		t.Fatal("expected false with no tasks")
	}
	doc.Categories[0].Tasks = []Task{{Text: "a", Completed: true}, {Text: "b"}}
	if AllTasksComplete(doc) {
		t.Fatal("expected false with one open task")
	}
	doc.Categories[0].Tasks[1].Completed = true
	if !AllTasksComplete(doc) {
		t.Fatal("expected true once every task is checked")
	}
}

func TestDeadlinesSortIsStable(t *testing.T) {
	today := day(2026, time.January, 1)
	doc := New()
	doc.Milestones = []Milestone{
		{ID: "late", Type: TypeDeadline, Text: "late", TargetDate: "2026-02-01"},
		{ID: "m", Type: TypeMilestone, Text: "milestone", TargetDate: "2026-01-02"},
		{ID: "first-tie", Type: TypeDeadline, Text: "first", TargetDate: "2026-01-10"},
		{ID: "bad", Type: TypeDeadline, Text: "bad", TargetDate: "soon"},
		{ID: "second-tie", Type: TypeDeadline, Text: "second", TargetDate: "2026-01-10"},
		{ID: "early", Type: TypeDeadline, Text: "early", TargetDate: "2026-01-03"},
	}

	views := Deadlines(doc, today)
	got := make([]string, 0, len(views))
	for _, v := range views {
		got = append(got, v.ID)
	}
	want := []string{"early", "first-tie", "second-tie", "late", "bad"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if views[1].Index != 2 || views[2].Index != 4 {
		t.Fatalf("expected source indexes 2 and 4, got %d and %d", views[1].Index, views[2].Index)
	}
}

func TestPartitionTreatsUnknownTypesAsMilestones(t *testing.T) {
	doc := New()
	doc.Milestones = []Milestone{
		{ID: "a", Type: TypeDeadline, TargetDate: "2026-01-01"},
		{ID: "b", Type: "", TargetDate: "2026-01-01"},
		{ID: "c", Type: "goal", TargetDate: "2026-01-01"},
	}
	deadlines, milestones := Partition(doc, day(2026, time.January, 1))
	if len(deadlines) != 1 || len(milestones) != 2 {
		t.Fatalf("expected 1/2 split, got %d/%d", len(deadlines), len(milestones))
	}
	if milestones[0].Index != 1 || milestones[1].Index != 2 {
		t.Fatalf("unexpected milestone indexes %d, %d", milestones[0].Index, milestones[1].Index)
	}
}

func TestFilteredViewAddressesIntendedItem(t *testing.T) {
	today := day(2026, time.April, 1)
	doc := New()
	milestoneID, _ := AddMilestone(doc, "Read 3 books", "2026-04-30")
	deadlineA, _ := AddDeadline(doc, NewDeadline{Text: "Same", TargetDate: "2026-04-05"})
	deadlineB, _ := AddDeadline(doc, NewDeadline{Text: "Same", TargetDate: "2026-04-05"})
	_, _ = AddMilestone(doc, "Run 5k", "2026-04-20")

	if err := DeleteMilestone(doc, milestoneID); err != nil {
		t.Fatalf("delete milestone: %v", err)
	}

	views := Deadlines(doc, today)
	if len(views) != 2 {
		t.Fatalf("expected 2 deadlines, got %d", len(views))
	}
	second := views[1]
	if second.ID != deadlineB {
		t.Fatalf("expected second view to be %s, got %s", deadlineB, second.ID)
	}
	if doc.Milestones[second.Index].ID != deadlineB {
		t.Fatalf("view index %d does not point at its own entry", second.Index)
	}

	if err := ToggleMilestone(doc, second.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	for _, m := range doc.Milestones {
		switch m.ID {
		case deadlineB:
			if !m.Completed {
				t.Fatal("expected the targeted deadline to be completed")
			}
		case deadlineA:
			if m.Completed {
				t.Fatal("identical-looking deadline was toggled instead")
			}
		default:
			if m.Completed {
				t.Fatalf("unrelated entry %s was toggled", m.ID)
			}
		}
	}
}

func TestStreakAtRisk(t *testing.T) {
	today := day(2026, time.July, 2)
	doc := New()
	doc.CurrentStreak = 4
	doc.LastCompletedDate = Ptr(day(2026, time.July, 1))
	if !StreakAtRisk(doc, today) {
		t.Fatal("expected warning when streak is active and today is open")
	}
	doc.LastCompletedDate = Ptr(today)
	if StreakAtRisk(doc, today) {
		t.Fatal("expected no warning after completing today")
	}
}

func TestCompletionRateAndRecentHistory(t *testing.T) {
	doc := New()
	if CompletionRate(doc) != 0 {
		t.Fatalf("expected 0%% with no history, got %d", CompletionRate(doc))
	}
	for i := 1; i <= 12; i++ {
		doc.History = append(doc.History, HistoryEntry{Date: At(day(2026, time.August, i)), Streak: i})
	}
	if CompletionRate(doc) != 100 {
		t.Fatalf("expected 100%%, got %d", CompletionRate(doc))
	}
	doc.History = doc.History[:3]
	if CompletionRate(doc) != 43 {
		t.Fatalf("expected 43%%, got %d", CompletionRate(doc))
	}

	doc.History = append(doc.History, HistoryEntry{Streak: 99})
	recent := RecentHistory(doc, 10)
	if len(recent) != 4 || recent[0].Streak != 99 || recent[3].Streak != 1 {
		t.Fatalf("unexpected recent history %+v", recent)
	}
}

func TestDeriveView(t *testing.T) {
	now := day(2026, time.September, 9)
	doc := New()
	doc.CurrentStreak = 2
	doc.Categories[0].Tasks = []Task{{Text: "pray", Completed: true}}
	doc.BadHabits = []BadHabit{{Name: "soda", CleanSince: At(now.AddDate(0, 0, -5))}}

	view := DeriveView(doc, now)
	if !view.CanCompleteDay || !view.StreakAtRisk || view.CompletedToday {
		t.Fatalf("unexpected gating flags %+v", view)
	}
	if view.Today != "2026-09-09" {
		t.Fatalf("expected today key 2026-09-09, got %s", view.Today)
	}
	if len(view.BadHabits) != 1 || view.BadHabits[0].DaysClean != 5 {
		t.Fatalf("expected 5 clean days, got %+v", view.BadHabits)
	}
}
