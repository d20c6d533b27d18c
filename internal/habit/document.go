package habit

// Document is the single persisted unit per user. The JSON field names are
// the wire format shared by the server and every client.
type Document struct {
	CurrentStreak      int            `json:"currentStreak"`
	LongestStreak      int            `json:"longestStreak"`
	TotalDaysCompleted int            `json:"totalDaysCompleted"`
	LastCompletedDate  *Time          `json:"lastCompletedDate"`
	Categories         []Category     `json:"categories"`
	BadHabits          []BadHabit     `json:"badHabits"`
	Milestones         []Milestone    `json:"milestones"`
	EndGoal            string         `json:"endGoal"`
	History            []HistoryEntry `json:"history"`
	DailyMotivation    *Motivation    `json:"dailyMotivation,omitempty"`

	// Server-only. Stripped by Public and carried over on replace.
	QuoteQueue    []Motivation `json:"quoteQueue,omitempty"`
	QueuePosition int          `json:"queuePosition,omitempty"`

	// Legacy flat task list, migrated into categories by Normalize.
	DailyTasks []string `json:"dailyTasks,omitempty"`
}

type Category struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Tasks []Task `json:"tasks"`
}

type Task struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Recurring bool   `json:"recurring"`
}

type BadHabit struct {
	Name             string    `json:"name"`
	CleanSince       Time      `json:"cleanSince"`
	LastRelapseDate  *Time     `json:"lastRelapseDate"`
	CurrentDaysClean int       `json:"currentDaysClean"`
	LongestStreak    int       `json:"longestStreak"`
	Relapses         []Relapse `json:"relapses"`
}

type Relapse struct {
	Date      Time `json:"date"`
	DaysSober int  `json:"daysSober"`
}

const (
	TypeDeadline  = "deadline"
	TypeMilestone = "milestone"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Milestone holds both the milestone and the deadline variant, told apart by
// Type. Anything other than TypeDeadline is a milestone.
type Milestone struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Text       string `json:"text"`
	TargetDate string `json:"targetDate"`
	Completed  bool   `json:"completed"`
	Category   string `json:"category,omitempty"`
	Priority   string `json:"priority,omitempty"`
}

func (m Milestone) IsDeadline() bool { return m.Type == TypeDeadline }

type HistoryEntry struct {
	Date           Time `json:"date"`
	Streak         int  `json:"streak"`
	TasksCompleted int  `json:"tasksCompleted,omitempty"`
}

type Motivation struct {
	BibleVerse Verse `json:"bibleVerse"`
	Quote      Quote `json:"quote"`
	Date       *Time `json:"date,omitempty"`
}

type Verse struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Complete reports whether both halves carry text and attribution.
func (m Motivation) Complete() bool {
	return m.BibleVerse.Text != "" && m.BibleVerse.Reference != "" &&
		m.Quote.Text != "" && m.Quote.Author != ""
}

// New returns the document a freshly registered user starts with.
func New() *Document {
	return &Document{
		Categories: []Category{{Name: "General", Icon: "📝", Tasks: []Task{}}},
		BadHabits:  []BadHabit{},
		Milestones: []Milestone{},
		History:    []HistoryEntry{},
	}
}

// Public returns a copy without server-only fields.
func (d *Document) Public() *Document {
	out := d.Clone()
	out.QuoteQueue = nil
	out.QueuePosition = 0
	return out
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.LastCompletedDate = d.LastCompletedDate.clone()

	if d.Categories != nil {
		out.Categories = make([]Category, len(d.Categories))
		for i, c := range d.Categories {
			out.Categories[i] = c
			if c.Tasks != nil {
				out.Categories[i].Tasks = append([]Task{}, c.Tasks...)
			}
		}
	}
	if d.BadHabits != nil {
		out.BadHabits = make([]BadHabit, len(d.BadHabits))
		for i, h := range d.BadHabits {
			out.BadHabits[i] = h
			out.BadHabits[i].LastRelapseDate = h.LastRelapseDate.clone()
			if h.Relapses != nil {
				out.BadHabits[i].Relapses = append([]Relapse{}, h.Relapses...)
			}
		}
	}
	if d.Milestones != nil {
		out.Milestones = append([]Milestone{}, d.Milestones...)
	}
	if d.History != nil {
		out.History = append([]HistoryEntry{}, d.History...)
	}
	if d.DailyMotivation != nil {
		m := d.DailyMotivation.clone()
		out.DailyMotivation = &m
	}
	if d.QuoteQueue != nil {
		out.QuoteQueue = make([]Motivation, len(d.QuoteQueue))
		for i, m := range d.QuoteQueue {
			out.QuoteQueue[i] = m.clone()
		}
	}
	if d.DailyTasks != nil {
		out.DailyTasks = append([]string{}, d.DailyTasks...)
	}
	return &out
}

func (m Motivation) clone() Motivation {
	m.Date = m.Date.clone()
	return m
}

// TaskCounts returns the number of tasks across all categories and how many
// of them are completed.
func (d *Document) TaskCounts() (total, completed int) {
	for _, c := range d.Categories {
		for _, t := range c.Tasks {
			total++
			if t.Completed {
				completed++
			}
		}
	}
	return total, completed
}

// MilestoneIndex resolves an id to its position in the combined array.
func (d *Document) MilestoneIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, m := range d.Milestones {
		if m.ID == id {
			return i
		}
	}
	return -1
}
