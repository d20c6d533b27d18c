package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"streakboard/internal/habit"
)

func renderStatus(w io.Writer, doc *habit.Document, v habit.View) {
	fmt.Fprintf(w, "%s  streak %d (best %d)  total %d  7-day %d%%\n",
		v.Today, v.CurrentStreak, v.LongestStreak, v.TotalDaysCompleted, v.CompletionRate)
	if v.EndGoal != "" {
		fmt.Fprintf(w, "goal: %s\n", v.EndGoal)
	}
	switch {
	case v.CompletedToday:
		fmt.Fprintln(w, "today: completed")
	case v.CanCompleteDay:
		fmt.Fprintln(w, "today: all tasks done, run `streakctl complete`")
	case v.StreakAtRisk:
		fmt.Fprintf(w, "today: %d/%d tasks, streak at risk\n", v.TasksCompleted, v.TasksTotal)
	default:
		fmt.Fprintf(w, "today: %d/%d tasks\n", v.TasksCompleted, v.TasksTotal)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for ci, c := range doc.Categories {
		fmt.Fprintf(tw, "\n%s %s\n", c.Icon, c.Name)
		for ti, t := range c.Tasks {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			extra := ""
			if t.Recurring {
				extra = "daily"
			}
			fmt.Fprintf(tw, "  [%s]\t%d.%d\t%s\t%s\n", mark, ci, ti, t.Text, extra)
		}
	}
	_ = tw.Flush()

	if len(v.Deadlines) > 0 {
		fmt.Fprintln(w, "\ndeadlines")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, d := range v.Deadlines {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", checkbox(d.Completed), d.Text, d.TargetDate, due(d.DaysLeft, d.ValidDate, d.Urgency), d.ID)
		}
		_ = tw.Flush()
	}
	if len(v.Milestones) > 0 {
		fmt.Fprintln(w, "\nmilestones")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, m := range v.Milestones {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", checkbox(m.Completed), m.Text, m.TargetDate, due(m.DaysLeft, m.ValidDate, m.Urgency), m.ID)
		}
		_ = tw.Flush()
	}
	if len(v.BadHabits) > 0 {
		fmt.Fprintln(w, "\nbad habits")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, h := range v.BadHabits {
			fmt.Fprintf(tw, "  %d\t%s\t%d days clean\tbest %d\t%d relapses\n", h.Index, h.Name, h.DaysClean, h.LongestStreak, h.RelapseCount)
		}
		_ = tw.Flush()
	}
	if v.Motivation != nil {
		fmt.Fprintln(w)
		renderMotivation(w, *v.Motivation)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func due(days int, valid bool, u habit.Urgency) string {
	if !valid {
		return "no date"
	}
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "due today"
	}
	return fmt.Sprintf("%d days (%s)", days, u)
}

func renderMotivation(w io.Writer, m habit.Motivation) {
	fmt.Fprintf(w, "%q %s\n", m.BibleVerse.Text, m.BibleVerse.Reference)
	fmt.Fprintf(w, "%q %s\n", m.Quote.Text, m.Quote.Author)
}

func renderCalendar(w io.Writer, cal habit.Calendar) {
	fmt.Fprintf(w, "%s %d\n", cal.Month, cal.Year)
	fmt.Fprintln(w, " Su  Mo  Tu  We  Th  Fr  Sa")

	var row strings.Builder
	for i, c := range cal.Cells {
		row.WriteString(cell(c))
		if (i+1)%7 == 0 {
			fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}
	fmt.Fprintln(w, "* completed  ! deadline  ^ milestone  [] today")
}

func cell(c habit.CalendarCell) string {
	if c.Empty {
		return "    "
	}
	mark := " "
	if s := c.Summary; s != nil {
		switch {
		case s.Completed:
			mark = "*"
		case len(s.Deadlines) > 0:
			mark = "!"
		case len(s.Milestones) > 0:
			mark = "^"
		}
	}
	if c.IsToday {
		return fmt.Sprintf("[%2d]", c.Day)
	}
	return fmt.Sprintf("%3d%s", c.Day, mark)
}
