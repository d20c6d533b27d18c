package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"streakboard/internal/habit"
	"streakboard/internal/jobs"
	"streakboard/internal/store"
	"streakboard/internal/testutil"
	"streakboard/internal/tracker"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newService(t *testing.T) (*tracker.Service, *clock) {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	c := &clock{now: time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)}
	svc := &tracker.Service{
		Store:    &store.Store{DB: db},
		Refills:  &jobs.Repo{DB: db},
		Location: time.UTC,
		Now:      c.Now,
	}
	if err := svc.Provision(context.Background(), 1); err != nil {
		t.Fatalf("provision: %v", err)
	}
	return svc, c
}

func TestProvisionStartsWithGeneralCategory(t *testing.T) {
	svc, _ := newService(t)
	doc, err := svc.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Categories) != 1 || doc.Categories[0].Name != "General" {
		t.Fatalf("unexpected categories %+v", doc.Categories)
	}
	if doc.DailyMotivation == nil || !doc.DailyMotivation.Complete() {
		t.Fatal("expected a daily motivation")
	}
}

func TestCompleteDayFlow(t *testing.T) {
	svc, c := newService(t)
	ctx := context.Background()

	if _, err := svc.AddTask(ctx, 1, 0, "pray", true); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if _, err := svc.AddTask(ctx, 1, 0, "buy groceries", false); err != nil {
		t.Fatalf("add task: %v", err)
	}

	_, _, err := svc.CompleteDay(ctx, 1)
	var incomplete *habit.IncompleteTasksError
	if !errors.As(err, &incomplete) || incomplete.Total != 2 {
		t.Fatalf("expected IncompleteTasksError over 2 tasks, got %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.ToggleTask(ctx, 1, 0, i); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	doc, streak, err := svc.CompleteDay(ctx, 1)
	if err != nil {
		t.Fatalf("complete day: %v", err)
	}
	if streak != 1 || doc.CurrentStreak != 1 {
		t.Fatalf("expected streak 1, got %d", streak)
	}
	if tasks := doc.Categories[0].Tasks; len(tasks) != 1 || tasks[0].Completed {
		t.Fatalf("expected only the recurring task, reset, got %+v", tasks)
	}

	if _, _, err := svc.CompleteDay(ctx, 1); !errors.Is(err, habit.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}

	// Two days later the streak has lapsed.
	c.now = c.now.AddDate(0, 0, 2)
	doc, err = svc.Load(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.CurrentStreak != 0 || doc.LongestStreak != 1 {
		t.Fatalf("expected decayed streak 0 with longest 1, got %d/%d", doc.CurrentStreak, doc.LongestStreak)
	}
}

func TestLoadRotatesMotivationDaily(t *testing.T) {
	svc, c := newService(t)
	ctx := context.Background()

	first, _ := svc.Load(ctx, 1)
	again, _ := svc.Load(ctx, 1)
	if !first.DailyMotivation.Date.Equal(again.DailyMotivation.Date.Time) {
		t.Fatal("expected the same motivation within a day")
	}

	c.now = c.now.AddDate(0, 0, 1)
	next, _ := svc.Load(ctx, 1)
	if !habit.SameDay(next.DailyMotivation.Date.Time, c.now, time.UTC) {
		t.Fatalf("expected a motivation dated today, got %v", next.DailyMotivation.Date)
	}
}

func TestLoadSchedulesRefillWhenQueueLow(t *testing.T) {
	svc, c := newService(t)
	ctx := context.Background()

	if _, err := svc.Load(ctx, 1); err != nil {
		t.Fatalf("load: %v", err)
	}
	job, err := svc.Refills.Claim(ctx, "w", c.now)
	if err != nil || job == nil || job.Type != jobs.TypeMotivationRefill {
		t.Fatalf("expected a refill job, got %+v (%v)", job, err)
	}
}

func TestRefreshMotivationServesQueue(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	queued := habit.Motivation{
		BibleVerse: habit.Verse{Text: "v", Reference: "r"},
		Quote:      habit.Quote{Text: "queued", Author: "a"},
	}
	if _, err := svc.Store.Update(ctx, 1, "SEED", func(d *habit.Document) error {
		d.QuoteQueue = []habit.Motivation{queued}
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	doc, m, err := svc.RefreshMotivation(ctx, 1)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if m.Quote.Text != "queued" || doc.QueuePosition != 1 {
		t.Fatalf("expected the queued motivation, got %+v at %d", m.Quote, doc.QueuePosition)
	}
}

func TestMilestonesByIndexOrID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, deadlineID, err := svc.AddMilestone(ctx, 1, tracker.NewMilestone{
		Type: habit.TypeDeadline, Text: "essay", TargetDate: "2026-10-20", Priority: "high",
	})
	if err != nil {
		t.Fatalf("add deadline: %v", err)
	}
	if _, _, err := svc.AddMilestone(ctx, 1, tracker.NewMilestone{Text: "30 days", TargetDate: "2026-11-13"}); err != nil {
		t.Fatalf("add milestone: %v", err)
	}

	doc, err := svc.ToggleMilestone(ctx, 1, "1")
	if err != nil {
		t.Fatalf("toggle by index: %v", err)
	}
	if !doc.Milestones[1].Completed {
		t.Fatal("expected the milestone at index 1 to be completed")
	}

	doc, err = svc.DeleteMilestone(ctx, 1, deadlineID)
	if err != nil {
		t.Fatalf("delete by id: %v", err)
	}
	if len(doc.Milestones) != 1 || doc.Milestones[0].Text != "30 days" {
		t.Fatalf("unexpected milestones %+v", doc.Milestones)
	}

	if _, err := svc.DeleteMilestone(ctx, 1, "7"); !errors.Is(err, habit.ErrInvalidMilestone) {
		t.Fatalf("expected ErrInvalidMilestone, got %v", err)
	}
}

func TestCategoriesAndRelapse(t *testing.T) {
	svc, c := newService(t)
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, 1, "Fitness", "💪"); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if _, err := svc.AddCategory(ctx, 1, "FITNESS", ""); !errors.Is(err, habit.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
	if _, err := svc.DeleteCategory(ctx, 1, 5); !errors.Is(err, habit.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}

	if _, err := svc.Store.Update(ctx, 1, "SEED", func(d *habit.Document) error {
		return habit.AddBadHabit(d, "soda", c.now.AddDate(0, 0, -5))
	}); err != nil {
		t.Fatalf("seed habit: %v", err)
	}
	doc, err := svc.Relapse(ctx, 1, 0)
	if err != nil {
		t.Fatalf("relapse: %v", err)
	}
	if h := doc.BadHabits[0]; len(h.Relapses) != 1 || h.Relapses[0].DaysSober != 5 || h.LongestStreak != 5 {
		t.Fatalf("unexpected habit after relapse %+v", h)
	}
	if _, err := svc.Relapse(ctx, 1, 3); !errors.Is(err, habit.ErrInvalidHabit) {
		t.Fatalf("expected ErrInvalidHabit, got %v", err)
	}
}

func TestCalendarDefaultsToCurrentMonth(t *testing.T) {
	svc, _ := newService(t)
	cal, err := svc.Calendar(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if cal.Year != 2026 || cal.Month != time.October || cal.DaysInMonth != 31 {
		t.Fatalf("unexpected calendar %d-%d with %d days", cal.Year, cal.Month, cal.DaysInMonth)
	}
}

func TestJournalRecordsTransitions(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.ClearAll(ctx, 1); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if _, err := svc.AddTask(ctx, 1, 0, "walk", false); err != nil {
		t.Fatalf("add task: %v", err)
	}
	events, err := svc.Journal(ctx, 1, 1)
	if err != nil || len(events) != 1 || events[0].Type != tracker.EventAddTask {
		t.Fatalf("expected latest event ADD_TASK, got %+v (%v)", events, err)
	}
}
