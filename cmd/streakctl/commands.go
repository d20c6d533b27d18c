package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"streakboard/internal/habit"

	"github.com/spf13/cobra"
)

func (a *app) registerCmd() *cobra.Command {
	var passcode string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and start a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ctl.Register(cmd.Context(), args[0], passcode); err != nil {
				return err
			}
			if err := a.saveSession(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", a.ctl.Username())
			return nil
		},
	}
	cmd.Flags().StringVarP(&passcode, "passcode", "p", "", "4 digit passcode")
	_ = cmd.MarkFlagRequired("passcode")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var passcode string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Start a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ctl.Login(cmd.Context(), args[0], passcode); err != nil {
				return err
			}
			if err := a.saveSession(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", a.ctl.Username())
			return nil
		},
	}
	cmd.Flags().StringVarP(&passcode, "passcode", "p", "", "4 digit passcode")
	_ = cmd.MarkFlagRequired("passcode")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.ctl.Logout(cmd.Context())
			if rmErr := os.Remove(a.sessionFile); rmErr != nil && !os.IsNotExist(rmErr) {
				return rmErr
			}
			return err
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show streaks, tasks, deadlines and clean days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			doc, err := a.ctl.Document()
			if err != nil {
				return err
			}
			view, err := a.ctl.View(time.Now())
			if err != nil {
				return err
			}
			renderStatus(cmd.OutOrStdout(), doc, view)
			return nil
		},
	}
}

func (a *app) calendarCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of completions and due dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			year, mon := now.Year(), now.Month()
			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("--month wants YYYY-MM: %w", err)
				}
				year, mon = t.Year(), t.Month()
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			cal, err := a.ctl.Calendar(year, mon, now)
			if err != nil {
				return err
			}
			renderCalendar(cmd.OutOrStdout(), cal)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM")
	return cmd
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <category> <task>",
		Short: "Check or uncheck a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, task, err := twoInts(args)
			if err != nil {
				return err
			}
			return a.ctl.ToggleTask(cmd.Context(), cat, task)
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Uncheck every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.ctl.ClearAll(cmd.Context())
		},
	}
}

func (a *app) completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Mark today as completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			streak, err := a.ctl.CompleteDay(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "day completed, streak %d\n", streak)
			return nil
		},
	}
}

func (a *app) relapseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relapse <habit>",
		Short: "Record a relapse for a bad habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("habit index: %w", err)
			}
			return a.ctl.Relapse(cmd.Context(), index)
		},
	}
}

func (a *app) motivationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "motivation",
		Short: "Show a fresh verse and quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.ctl.RefreshMotivation(cmd.Context())
			if err != nil {
				return err
			}
			renderMotivation(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func (a *app) taskCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "Add or remove tasks"}

	var recurring bool
	add := &cobra.Command{
		Use:   "add <category> <text>",
		Short: "Add a task to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("category index: %w", err)
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.AddTask(cmd.Context(), cat, args[1], recurring)
		},
	}
	add.Flags().BoolVarP(&recurring, "recurring", "r", false, "keep the task after the day is completed")

	rm := &cobra.Command{
		Use:   "rm <category> <task>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, task, err := twoInts(args)
			if err != nil {
				return err
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.DeleteTask(cmd.Context(), cat, task)
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func (a *app) categoryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "category", Short: "Add or remove task categories"}

	var icon string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.AddCategory(cmd.Context(), args[0], icon)
		},
	}
	add.Flags().StringVar(&icon, "icon", "", "category icon")

	rm := &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove a category and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("category index: %w", err)
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.DeleteCategory(cmd.Context(), index)
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func (a *app) habitCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "habit", Short: "Track bad habits"}

	var since string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a bad habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanSince := time.Now()
			if since != "" {
				t, ok := habit.ParseDate(since, time.Local)
				if !ok {
					return fmt.Errorf("--since wants YYYY-MM-DD, got %q", since)
				}
				cleanSince = t
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.AddBadHabit(cmd.Context(), args[0], cleanSince)
		},
	}
	add.Flags().StringVar(&since, "since", "", "clean since YYYY-MM-DD (default now)")

	rm := &cobra.Command{
		Use:   "rm <index>",
		Short: "Stop tracking a bad habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("habit index: %w", err)
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.DeleteBadHabit(cmd.Context(), index)
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func (a *app) deadlineCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "deadline", Short: "Add deadlines"}

	var category, priority string
	add := &cobra.Command{
		Use:   "add <text> <YYYY-MM-DD>",
		Short: "Add a deadline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			id, err := a.ctl.AddDeadline(cmd.Context(), habit.NewDeadline{
				Text:       args[0],
				TargetDate: args[1],
				Category:   category,
				Priority:   priority,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	add.Flags().StringVar(&category, "category", "", "deadline category")
	add.Flags().StringVar(&priority, "priority", "", "low, medium or high")

	cmd.AddCommand(add)
	return cmd
}

// milestoneCmd covers both variants: toggle and rm take the id printed by
// status.
func (a *app) milestoneCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "milestone", Short: "Add, check off or remove milestones and deadlines"}

	add := &cobra.Command{
		Use:   "add <text> <YYYY-MM-DD>",
		Short: "Add a milestone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			id, err := a.ctl.AddMilestone(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Check or uncheck a milestone or deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.ToggleMilestone(cmd.Context(), args[0])
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a milestone or deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.DeleteMilestone(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(add, toggle, rm)
	return cmd
}

func (a *app) goalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal <text>",
		Short: "Set the end goal (empty clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			return a.ctl.SetGoal(cmd.Context(), args[0])
		},
	}
}

func twoInts(args []string) (int, int, error) {
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("category index: %w", err)
	}
	b, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("task index: %w", err)
	}
	return a, b, nil
}
