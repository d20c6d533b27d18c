package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"streakboard/internal/habit"
	"streakboard/internal/jobs"
	"streakboard/internal/store"
	"streakboard/internal/tracker"
)

type DayHandler struct {
	Svc      *tracker.Service
	Refiller *jobs.Refiller
}

func (h *DayHandler) CompleteDay(w http.ResponseWriter, r *http.Request) {
	doc, streak, err := h.Svc.CompleteDay(r.Context(), userID(r))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, map[string]any{"streak": streak})
}

func (h *DayHandler) Relapse(w http.ResponseWriter, r *http.Request) {
	h.relapse(w, r, intParam(r, "index"))
}

type relapseReq struct {
	HabitIndex *int `json:"habitIndex"`
}

// RelapseByBody takes the habit index from a {"habitIndex": n} body.
func (h *DayHandler) RelapseByBody(w http.ResponseWriter, r *http.Request) {
	var req relapseReq
	if err := decode(r, &req); err != nil || req.HabitIndex == nil {
		writeError(w, http.StatusBadRequest, habit.ErrInvalidHabit.Error())
		return
	}
	h.relapse(w, r, *req.HabitIndex)
}

func (h *DayHandler) relapse(w http.ResponseWriter, r *http.Request, index int) {
	doc, err := h.Svc.Relapse(r.Context(), userID(r), index)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}

func (h *DayHandler) RefreshMotivation(w http.ResponseWriter, r *http.Request) {
	doc, m, err := h.Svc.RefreshMotivation(r.Context(), userID(r))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, map[string]any{"motivation": m})
}

// GenerateQuotes refills the caller's motivation queue synchronously.
func (h *DayHandler) GenerateQuotes(w http.ResponseWriter, r *http.Request) {
	n, err := h.Refiller.Refill(r.Context(), userID(r))
	if errors.Is(err, store.ErrNotFound) {
		writeFailure(w, r, err)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "generate quotes", "user", userID(r), "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate quotes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Motivation queue refilled",
		"count":   n,
	})
}
