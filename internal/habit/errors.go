package habit

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCompleted  = errors.New("Already completed today")
	ErrNoTasks           = errors.New("Add daily tasks first")
	ErrInvalidCategory   = errors.New("Invalid category")
	ErrInvalidTask       = errors.New("Invalid task")
	ErrInvalidHabit      = errors.New("Invalid habit index")
	ErrInvalidMilestone  = errors.New("Invalid milestone")
	ErrDuplicateCategory = errors.New("Category already exists")
	ErrEmptyField        = errors.New("required field is empty")
)

// IncompleteTasksError rejects a day completion while tasks remain open.
type IncompleteTasksError struct {
	Completed int
	Total     int
}

func (e *IncompleteTasksError) Error() string {
	return fmt.Sprintf("Complete all tasks first (%d/%d done)", e.Completed, e.Total)
}

// IsRejection reports whether err is a domain rule violation rather than an
// infrastructure failure.
func IsRejection(err error) bool {
	var incomplete *IncompleteTasksError
	if errors.As(err, &incomplete) {
		return true
	}
	for _, target := range []error{
		ErrAlreadyCompleted, ErrNoTasks, ErrInvalidCategory, ErrInvalidTask,
		ErrInvalidHabit, ErrInvalidMilestone, ErrDuplicateCategory, ErrEmptyField,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
