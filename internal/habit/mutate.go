package habit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyField, field)
	}
	return value, nil
}

func AddTask(d *Document, catIndex int, text string, recurring bool) error {
	text, err := required("task", text)
	if err != nil {
		return err
	}
	if catIndex < 0 || catIndex >= len(d.Categories) {
		return ErrInvalidCategory
	}
	c := &d.Categories[catIndex]
	c.Tasks = append(c.Tasks, Task{Text: text, Recurring: recurring})
	return nil
}

func DeleteTask(d *Document, catIndex, taskIndex int) error {
	if _, err := taskAt(d, catIndex, taskIndex); err != nil {
		return err
	}
	c := &d.Categories[catIndex]
	c.Tasks = append(c.Tasks[:taskIndex], c.Tasks[taskIndex+1:]...)
	return nil
}

// AddCategory appends a category. Names are unique regardless of case.
func AddCategory(d *Document, name, icon string) error {
	name, err := required("name", name)
	if err != nil {
		return err
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = "📝"
	}
	for _, c := range d.Categories {
		if strings.EqualFold(c.Name, name) {
			return ErrDuplicateCategory
		}
	}
	d.Categories = append(d.Categories, Category{Name: name, Icon: icon, Tasks: []Task{}})
	return nil
}

func DeleteCategory(d *Document, index int) error {
	if index < 0 || index >= len(d.Categories) {
		return ErrInvalidCategory
	}
	d.Categories = append(d.Categories[:index], d.Categories[index+1:]...)
	return nil
}

func AddBadHabit(d *Document, name string, cleanSince time.Time) error {
	name, err := required("name", name)
	if err != nil {
		return err
	}
	if cleanSince.IsZero() {
		return fmt.Errorf("%w: cleanSince", ErrEmptyField)
	}
	d.BadHabits = append(d.BadHabits, BadHabit{
		Name:       name,
		CleanSince: At(cleanSince),
		Relapses:   []Relapse{},
	})
	return nil
}

func DeleteBadHabit(d *Document, index int) error {
	if index < 0 || index >= len(d.BadHabits) {
		return ErrInvalidHabit
	}
	d.BadHabits = append(d.BadHabits[:index], d.BadHabits[index+1:]...)
	return nil
}

// NewDeadline describes a deadline to add. Category is a free-text reference
// to a category name; Priority defaults to medium.
type NewDeadline struct {
	Text       string
	TargetDate string
	Category   string
	Priority   string
}

// AddDeadline appends a deadline and returns its id.
func AddDeadline(d *Document, in NewDeadline) (string, error) {
	text, err := required("text", in.Text)
	if err != nil {
		return "", err
	}
	target, err := required("targetDate", in.TargetDate)
	if err != nil {
		return "", err
	}
	priority := strings.ToLower(strings.TrimSpace(in.Priority))
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		priority = PriorityMedium
	}
	m := Milestone{
		ID:         NewID(),
		Type:       TypeDeadline,
		Text:       text,
		TargetDate: target,
		Category:   strings.TrimSpace(in.Category),
		Priority:   priority,
	}
	d.Milestones = append(d.Milestones, m)
	return m.ID, nil
}

// AddMilestone appends a plain milestone and returns its id.
func AddMilestone(d *Document, text, targetDate string) (string, error) {
	text, err := required("text", text)
	if err != nil {
		return "", err
	}
	targetDate, err = required("targetDate", targetDate)
	if err != nil {
		return "", err
	}
	m := Milestone{ID: NewID(), Type: TypeMilestone, Text: text, TargetDate: targetDate}
	d.Milestones = append(d.Milestones, m)
	return m.ID, nil
}

// ToggleMilestone flips the entry with the given id, whichever variant it is.
func ToggleMilestone(d *Document, id string) error {
	i := d.MilestoneIndex(id)
	if i < 0 {
		return ErrInvalidMilestone
	}
	d.Milestones[i].Completed = !d.Milestones[i].Completed
	return nil
}

func DeleteMilestone(d *Document, id string) error {
	i := d.MilestoneIndex(id)
	if i < 0 {
		return ErrInvalidMilestone
	}
	d.Milestones = append(d.Milestones[:i], d.Milestones[i+1:]...)
	return nil
}

// MilestoneID resolves a route reference, either an id or a position in the
// combined array, to an id.
func MilestoneID(d *Document, ref string) (string, error) {
	if i := d.MilestoneIndex(ref); i >= 0 {
		return ref, nil
	}
	index, err := strconv.Atoi(ref)
	if err != nil || index < 0 || index >= len(d.Milestones) {
		return "", ErrInvalidMilestone
	}
	return d.Milestones[index].ID, nil
}

// SetGoal replaces the end goal. An empty goal clears it.
func SetGoal(d *Document, goal string) {
	d.EndGoal = strings.TrimSpace(goal)
}
