package tracker

import (
	"context"
	"log/slog"
	"time"

	"streakboard/internal/habit"
	"streakboard/internal/jobs"
	"streakboard/internal/motivation"
	"streakboard/internal/store"
)

// Journal event types, one per server-computed transition.
const (
	EventDailyRefresh      = "DAILY_REFRESH"
	EventToggleTask        = "TOGGLE_TASK"
	EventClearAll          = "CLEAR_ALL"
	EventAddTask           = "ADD_TASK"
	EventDeleteTask        = "DELETE_TASK"
	EventAddCategory       = "ADD_CATEGORY"
	EventDeleteCategory    = "DELETE_CATEGORY"
	EventAddMilestone      = "ADD_MILESTONE"
	EventDeleteMilestone   = "DELETE_MILESTONE"
	EventToggleMilestone   = "TOGGLE_MILESTONE"
	EventCompleteDay       = "COMPLETE_DAY"
	EventRelapse           = "RELAPSE"
	EventRefreshMotivation = "REFRESH_MOTIVATION"
)

// Service applies server-side transitions to stored documents. Each
// transition runs inside one store transaction.
type Service struct {
	Store *store.Store
	// Refills is optional. When set, a low motivation queue schedules a
	// refill job.
	Refills  *jobs.Repo
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

func (s *Service) now() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if s.Location != nil {
		now = now.In(s.Location)
	}
	return now
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// WithStore returns a copy of s that writes through st, typically a store
// bound to an open transaction.
func (s *Service) WithStore(st *store.Store) *Service {
	cp := *s
	cp.Store = st
	return &cp
}

// Provision stores the starting document for a new user.
func (s *Service) Provision(ctx context.Context, userID uint64) error {
	doc := habit.New()
	motivation.Refresh(doc, s.now())
	return s.Store.Create(ctx, userID, doc)
}

// Load returns the document brought up to date for today: legacy fields
// migrated, a lapsed streak reset, clean-day counters recomputed and the
// daily motivation rotated. Changes are persisted before returning.
func (s *Service) Load(ctx context.Context, userID uint64) (*habit.Document, error) {
	now := s.now()
	return s.apply(ctx, userID, EventDailyRefresh, func(d *habit.Document) error {
		habit.Normalize(d)
		habit.DecayStreak(d, now)
		habit.RefreshDaysClean(d, now)
		if !motivation.IsCurrent(d, now) {
			motivation.Refresh(d, now)
		}
		return nil
	})
}

// Replace stores a client-computed document.
func (s *Service) Replace(ctx context.Context, userID uint64, doc *habit.Document) error {
	_, err := s.Store.Replace(ctx, userID, doc)
	return err
}

func (s *Service) View(ctx context.Context, userID uint64) (habit.View, error) {
	doc, err := s.Load(ctx, userID)
	if err != nil {
		return habit.View{}, err
	}
	return habit.DeriveView(doc, s.now()), nil
}

// Calendar builds the month grid. A zero year or month is taken from today.
func (s *Service) Calendar(ctx context.Context, userID uint64, year int, month time.Month) (habit.Calendar, error) {
	doc, err := s.Store.Load(ctx, userID)
	if err != nil {
		return habit.Calendar{}, err
	}
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	return habit.MonthGrid(doc, year, month, now), nil
}

func (s *Service) ToggleTask(ctx context.Context, userID uint64, cat, task int) (*habit.Document, error) {
	return s.apply(ctx, userID, EventToggleTask, func(d *habit.Document) error {
		return habit.ToggleTask(d, cat, task)
	})
}

func (s *Service) ClearAll(ctx context.Context, userID uint64) (*habit.Document, error) {
	return s.apply(ctx, userID, EventClearAll, func(d *habit.Document) error {
		habit.ClearAll(d)
		return nil
	})
}

func (s *Service) AddTask(ctx context.Context, userID uint64, cat int, text string, recurring bool) (*habit.Document, error) {
	return s.apply(ctx, userID, EventAddTask, func(d *habit.Document) error {
		return habit.AddTask(d, cat, text, recurring)
	})
}

func (s *Service) DeleteTask(ctx context.Context, userID uint64, cat, task int) (*habit.Document, error) {
	return s.apply(ctx, userID, EventDeleteTask, func(d *habit.Document) error {
		return habit.DeleteTask(d, cat, task)
	})
}

func (s *Service) AddCategory(ctx context.Context, userID uint64, name, icon string) (*habit.Document, error) {
	return s.apply(ctx, userID, EventAddCategory, func(d *habit.Document) error {
		return habit.AddCategory(d, name, icon)
	})
}

func (s *Service) DeleteCategory(ctx context.Context, userID uint64, index int) (*habit.Document, error) {
	return s.apply(ctx, userID, EventDeleteCategory, func(d *habit.Document) error {
		return habit.DeleteCategory(d, index)
	})
}

// NewMilestone is the input of AddMilestone. Type "deadline" adds a deadline
// with category and priority; anything else adds a plain milestone.
type NewMilestone struct {
	Type       string
	Text       string
	TargetDate string
	Category   string
	Priority   string
}

func (s *Service) AddMilestone(ctx context.Context, userID uint64, in NewMilestone) (*habit.Document, string, error) {
	var id string
	doc, err := s.apply(ctx, userID, EventAddMilestone, func(d *habit.Document) error {
		var err error
		if in.Type == habit.TypeDeadline {
			id, err = habit.AddDeadline(d, habit.NewDeadline{
				Text:       in.Text,
				TargetDate: in.TargetDate,
				Category:   in.Category,
				Priority:   in.Priority,
			})
		} else {
			id, err = habit.AddMilestone(d, in.Text, in.TargetDate)
		}
		return err
	})
	return doc, id, err
}

// DeleteMilestone and ToggleMilestone take an id or a position in the
// combined milestones array.
func (s *Service) DeleteMilestone(ctx context.Context, userID uint64, ref string) (*habit.Document, error) {
	return s.apply(ctx, userID, EventDeleteMilestone, func(d *habit.Document) error {
		id, err := habit.MilestoneID(d, ref)
		if err != nil {
			return err
		}
		return habit.DeleteMilestone(d, id)
	})
}

func (s *Service) ToggleMilestone(ctx context.Context, userID uint64, ref string) (*habit.Document, error) {
	return s.apply(ctx, userID, EventToggleMilestone, func(d *habit.Document) error {
		id, err := habit.MilestoneID(d, ref)
		if err != nil {
			return err
		}
		return habit.ToggleMilestone(d, id)
	})
}

func (s *Service) CompleteDay(ctx context.Context, userID uint64) (*habit.Document, int, error) {
	now := s.now()
	var streak int
	doc, err := s.apply(ctx, userID, EventCompleteDay, func(d *habit.Document) error {
		var err error
		streak, err = habit.CompleteDay(d, now)
		return err
	})
	return doc, streak, err
}

func (s *Service) Relapse(ctx context.Context, userID uint64, index int) (*habit.Document, error) {
	now := s.now()
	return s.apply(ctx, userID, EventRelapse, func(d *habit.Document) error {
		return habit.RecordRelapse(d, index, now)
	})
}

// RefreshMotivation serves the next motivation regardless of whether today's
// was already served.
func (s *Service) RefreshMotivation(ctx context.Context, userID uint64) (*habit.Document, habit.Motivation, error) {
	now := s.now()
	var m habit.Motivation
	doc, err := s.apply(ctx, userID, EventRefreshMotivation, func(d *habit.Document) error {
		m = motivation.Refresh(d, now)
		return nil
	})
	return doc, m, err
}

func (s *Service) Journal(ctx context.Context, userID uint64, limit int) ([]store.DocumentEvent, error) {
	return s.Store.Journal(ctx, userID, limit)
}

func (s *Service) apply(ctx context.Context, userID uint64, event string, fn func(*habit.Document) error) (*habit.Document, error) {
	doc, err := s.Store.Update(ctx, userID, event, fn)
	if err != nil {
		return nil, err
	}
	s.maybeRefill(ctx, userID, doc)
	return doc, nil
}

func (s *Service) maybeRefill(ctx context.Context, userID uint64, doc *habit.Document) {
	if s.Refills == nil || !motivation.NeedsRefill(doc) {
		return
	}
	queued, err := s.Refills.EnqueueRefill(ctx, userID, s.now())
	if err != nil {
		s.logger().Warn("enqueue motivation refill", "user", userID, "error", err)
		return
	}
	if queued {
		s.logger().Debug("motivation refill scheduled", "user", userID)
	}
}
