// Command streakctl drives a streakboard server from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"streakboard/internal/client"

	"github.com/spf13/cobra"
)

type app struct {
	server      string
	sessionFile string
	ctl         *client.Controller
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "not logged in, run: streakctl login <username>")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "streakctl",
		Short:         "Track daily tasks, streaks and clean days",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctl, err := client.New(a.server, nil)
			if err != nil {
				return err
			}
			a.ctl = ctl
			if token, err := os.ReadFile(a.sessionFile); err == nil {
				ctl.UseToken(strings.TrimSpace(string(token)))
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.server, "server", envOr("STREAKBOARD_URL", "http://localhost:8080"), "server base URL")
	root.PersistentFlags().StringVar(&a.sessionFile, "session", defaultSessionFile(), "file holding the session token")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.statusCmd(),
		a.calendarCmd(),
		a.toggleCmd(),
		a.clearCmd(),
		a.completeCmd(),
		a.relapseCmd(),
		a.motivationCmd(),
		a.taskCmd(),
		a.categoryCmd(),
		a.habitCmd(),
		a.deadlineCmd(),
		a.milestoneCmd(),
		a.goalCmd(),
	)
	return root
}

func (a *app) saveSession() error {
	if err := os.MkdirAll(filepath.Dir(a.sessionFile), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	return os.WriteFile(a.sessionFile, []byte(a.ctl.Token()+"\n"), 0o600)
}

// load fetches the document every command works against.
func (a *app) load(ctx context.Context) error {
	_, err := a.ctl.Load(ctx)
	return err
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "streakboard", "session")
}
