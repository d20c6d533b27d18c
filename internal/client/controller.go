package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"streakboard/internal/habit"
)

var ErrNotLoaded = errors.New("document not loaded")

// Controller owns the in-memory copy of the signed-in user's document.
//
// Server-computed transitions send an intent and swap in the document the
// server returns. Local edits mutate the copy and then save the whole
// document; a failed save restores the copy taken before the edit. Methods
// are safe for concurrent use. The lock is not held across network calls, so
// when calls overlap the last response wins.
type Controller struct {
	t *transport

	mu  sync.Mutex
	doc *habit.Document
	// gen counts local edits so a failed save only restores its snapshot
	// when no later edit has landed.
	gen      uint64
	username string
}

// New builds a controller for the server at baseURL. A nil hc gets a client
// with a cookie jar.
func New(baseURL string, hc *http.Client) (*Controller, error) {
	t, err := newTransport(baseURL, hc)
	if err != nil {
		return nil, err
	}
	return &Controller{t: t}, nil
}

type sessionResp struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (c *Controller) Register(ctx context.Context, username, passcode string) error {
	return c.startSession(ctx, "/api/register", username, passcode)
}

func (c *Controller) Login(ctx context.Context, username, passcode string) error {
	return c.startSession(ctx, "/api/login", username, passcode)
}

func (c *Controller) startSession(ctx context.Context, path, username, passcode string) error {
	var resp sessionResp
	err := c.t.do(ctx, http.MethodPost, path, map[string]string{
		"username": username,
		"passcode": passcode,
	}, &resp)
	if err != nil {
		return err
	}
	c.t.setToken(resp.Token)

	c.mu.Lock()
	c.username = resp.Username
	c.doc = nil
	c.mu.Unlock()
	return nil
}

// Logout ends the session on the server and forgets the local document.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.t.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	c.t.setToken("")

	c.mu.Lock()
	c.doc = nil
	c.username = ""
	c.mu.Unlock()
	return err
}

// Token is the current session token, for callers that persist sessions.
func (c *Controller) Token() string { return c.t.getToken() }

// UseToken resumes a session saved from Token.
func (c *Controller) UseToken(token string) { c.t.setToken(token) }

func (c *Controller) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

// Load fetches the document and makes it the local copy.
func (c *Controller) Load(ctx context.Context) (*habit.Document, error) {
	var doc habit.Document
	if err := c.t.do(ctx, http.MethodGet, "/api/data", nil, &doc); err != nil {
		return nil, err
	}
	c.set(&doc)
	return doc.Clone(), nil
}

// Document returns a copy of the local document.
func (c *Controller) Document() (*habit.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil, ErrNotLoaded
	}
	return c.doc.Clone(), nil
}

// View derives the dashboard state from the local document at now.
func (c *Controller) View(now time.Time) (habit.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return habit.View{}, ErrNotLoaded
	}
	return habit.DeriveView(c.doc, now), nil
}

// Calendar lays out a month of the local document. today decides the
// highlighted cell and the calendar's time zone.
func (c *Controller) Calendar(year int, month time.Month, today time.Time) (habit.Calendar, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return habit.Calendar{}, ErrNotLoaded
	}
	return habit.MonthGrid(c.doc, year, month, today), nil
}

func (c *Controller) set(doc *habit.Document) {
	c.mu.Lock()
	c.doc = doc
	c.gen++
	c.mu.Unlock()
}

// Server-computed transitions.

type transitionResp struct {
	Success    bool              `json:"success"`
	Data       *habit.Document   `json:"data"`
	Streak     int               `json:"streak"`
	Motivation *habit.Motivation `json:"motivation"`
}

func (c *Controller) transition(ctx context.Context, method, path string, body any) (transitionResp, error) {
	var resp transitionResp
	if err := c.t.do(ctx, method, path, body, &resp); err != nil {
		return resp, err
	}
	if resp.Data == nil {
		return resp, fmt.Errorf("%s: response carried no document", path)
	}
	c.set(resp.Data)
	return resp, nil
}

func (c *Controller) ToggleTask(ctx context.Context, cat, task int) error {
	_, err := c.transition(ctx, http.MethodPost, fmt.Sprintf("/api/tasks/%d/%d/toggle", cat, task), nil)
	return err
}

func (c *Controller) ClearAll(ctx context.Context) error {
	_, err := c.transition(ctx, http.MethodPost, "/api/tasks/clear-all", nil)
	return err
}

// CompleteDay returns the streak after completion.
func (c *Controller) CompleteDay(ctx context.Context) (int, error) {
	resp, err := c.transition(ctx, http.MethodPost, "/api/complete-day", nil)
	return resp.Streak, err
}

func (c *Controller) Relapse(ctx context.Context, habitIndex int) error {
	_, err := c.transition(ctx, http.MethodPost, fmt.Sprintf("/api/bad-habits/%d/relapse", habitIndex), nil)
	return err
}

func (c *Controller) RefreshMotivation(ctx context.Context) (habit.Motivation, error) {
	resp, err := c.transition(ctx, http.MethodPost, "/api/motivation/refresh", nil)
	if err != nil {
		return habit.Motivation{}, err
	}
	if resp.Motivation != nil {
		return *resp.Motivation, nil
	}
	if resp.Data.DailyMotivation != nil {
		return *resp.Data.DailyMotivation, nil
	}
	return habit.Motivation{}, nil
}

// Local edits.

// edit applies fn to the local document and saves the result. A rejected
// edit leaves the document untouched. A failed save restores the previous
// document unless another edit happened in the meantime.
func (c *Controller) edit(ctx context.Context, fn func(d *habit.Document) error) error {
	c.mu.Lock()
	if c.doc == nil {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	snapshot := c.doc.Clone()
	if err := fn(c.doc); err != nil {
		c.doc = snapshot
		c.mu.Unlock()
		return err
	}
	c.gen++
	gen := c.gen
	payload := c.doc.Clone()
	c.mu.Unlock()

	err := c.t.do(ctx, http.MethodPost, "/api/data", payload, nil)
	if err == nil {
		return nil
	}

	c.mu.Lock()
	if c.gen == gen {
		c.doc = snapshot
		c.gen++
	}
	c.mu.Unlock()
	return fmt.Errorf("save document: %w", err)
}

func (c *Controller) AddTask(ctx context.Context, cat int, text string, recurring bool) error {
	return c.edit(ctx, func(d *habit.Document) error {
		return habit.AddTask(d, cat, text, recurring)
	})
}

func (c *Controller) DeleteTask(ctx context.Context, cat, task int) error {
	return c.edit(ctx, func(d *habit.Document) error {
		return habit.DeleteTask(d, cat, task)
	})
}

func (c *Controller) AddCategory(ctx context.Context, name, icon string) error {
	return c.edit(ctx, func(d *habit.Document) error {
		return habit.AddCategory(d, name, icon)
	})
}

func (c *Controller) DeleteCategory(ctx context.Context, index int) error {
	return c.edit(ctx, func(d *habit.Document) error {
		return habit.DeleteCategory(d, index)
	})
}

func (c *Controller) AddBadHabit(ctx context.Context, name string, cleanSince time.Time) error {
	return c.edit(ctx, func(d *habit.Document) error {
		return habit.AddBadHabit(d, name, cleanSince)
	})
}

func (c *Controller) DeleteBadHabit(ctx context.Context, index int) error {
	return c.edit(ctx, func(d *habit.Document) error {
		return habit.DeleteBadHabit(d, index)
	})
}

// AddDeadline returns the id of the new entry.
func (c *Controller) AddDeadline(ctx context.Context, in habit.NewDeadline) (string, error) {
	var id string
	err := c.edit(ctx, func(d *habit.Document) error {
		var err error
		id, err = habit.AddDeadline(d, in)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AddMilestone returns the id of the new entry.
func (c *Controller) AddMilestone(ctx context.Context, text, targetDate string) (string, error) {
	var id string
	err := c.edit(ctx, func(d *habit.Document) error {
		var err error
		id, err = habit.AddMilestone(d, text, targetDate)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (c *Controller) ToggleMilestone(ctx context.Context, id string) error {
	return c.edit(ctx, func(d *habit.Document) error {
		return habit.ToggleMilestone(d, id)
	})
}

func (c *Controller) DeleteMilestone(ctx context.Context, id string) error {
	return c.edit(ctx, func(d *habit.Document) error {
		return habit.DeleteMilestone(d, id)
	})
}

func (c *Controller) SetGoal(ctx context.Context, goal string) error {
	return c.edit(ctx, func(d *habit.Document) error {
		habit.SetGoal(d, goal)
		return nil
	})
}
