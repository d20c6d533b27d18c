package habit

import "time"

// ToggleTask flips one task's completion flag.
func ToggleTask(d *Document, catIndex, taskIndex int) error {
	task, err := taskAt(d, catIndex, taskIndex)
	if err != nil {
		return err
	}
	task.Completed = !task.Completed
	return nil
}

// ClearAll unchecks every task.
func ClearAll(d *Document) {
	for i := range d.Categories {
		for j := range d.Categories[i].Tasks {
			d.Categories[i].Tasks[j].Completed = false
		}
	}
}

// CompleteDay records today's completion and returns the new streak. The
// streak continues only when the previous completion was exactly yesterday.
// Afterwards one-off tasks are dropped and recurring tasks are unchecked.
func CompleteDay(d *Document, now time.Time) (int, error) {
	loc := now.Location()
	if !CanCompleteToday(d, now) {
		return 0, ErrAlreadyCompleted
	}

	total, completed := d.TaskCounts()
	if total == 0 {
		return 0, ErrNoTasks
	}
	if completed < total {
		return 0, &IncompleteTasksError{Completed: completed, Total: total}
	}

	if d.LastCompletedDate != nil && !d.LastCompletedDate.IsZero() &&
		DaysBetween(d.LastCompletedDate.Time, now, loc) == 1 {
		d.CurrentStreak++
	} else {
		d.CurrentStreak = 1
	}
	if d.CurrentStreak > d.LongestStreak {
		d.LongestStreak = d.CurrentStreak
	}
	d.TotalDaysCompleted++
	d.LastCompletedDate = Ptr(now)
	d.History = append(d.History, HistoryEntry{
		Date:           At(now),
		Streak:         d.CurrentStreak,
		TasksCompleted: total,
	})

	for i := range d.Categories {
		kept := make([]Task, 0, len(d.Categories[i].Tasks))
		for _, t := range d.Categories[i].Tasks {
			if !t.Recurring {
				continue
			}
			t.Completed = false
			kept = append(kept, t)
		}
		d.Categories[i].Tasks = kept
	}
	return d.CurrentStreak, nil
}

// RecordRelapse closes the habit's clean streak at now and starts a new one.
func RecordRelapse(d *Document, index int, now time.Time) error {
	if index < 0 || index >= len(d.BadHabits) {
		return ErrInvalidHabit
	}
	h := &d.BadHabits[index]
	days := DaysClean(*h, now)

	h.Relapses = append(h.Relapses, Relapse{Date: At(now), DaysSober: days})
	if days > h.LongestStreak {
		h.LongestStreak = days
	}
	h.CurrentDaysClean = 0
	h.LastRelapseDate = Ptr(now)
	h.CleanSince = At(now)
	return nil
}

func taskAt(d *Document, catIndex, taskIndex int) (*Task, error) {
	if catIndex < 0 || catIndex >= len(d.Categories) {
		return nil, ErrInvalidCategory
	}
	tasks := d.Categories[catIndex].Tasks
	if taskIndex < 0 || taskIndex >= len(tasks) {
		return nil, ErrInvalidTask
	}
	return &tasks[taskIndex], nil
}
