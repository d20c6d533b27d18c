package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"streakboard/internal/habit"
	"streakboard/internal/tracker"
)

// JournalLimit is the number of events GET /api/journal returns.
const JournalLimit = 50

type DataHandler struct {
	Svc *tracker.Service
}

func (h *DataHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.Load(r.Context(), userID(r))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.Public())
}

func (h *DataHandler) Replace(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data format")
		return
	}
	if err := h.Svc.Replace(r.Context(), userID(r), &doc); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Data saved successfully",
	})
}

// decodeDocument accepts only a JSON object. null, arrays and scalars would
// otherwise decode to an empty document and wipe the stored one.
func decodeDocument(r *http.Request) (*habit.Document, error) {
	var raw json.RawMessage
	if err := decode(r, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, errors.New("document must be a JSON object")
	}
	var doc habit.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (h *DataHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.View(r.Context(), userID(r))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Calendar serves the month grid for ?year=&month=, defaulting to the
// current month.
func (h *DataHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		year  int
		month int
		err   error
	)
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil || year < 1 {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
	}
	if v := q.Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
	}

	cal, err := h.Svc.Calendar(r.Context(), userID(r), year, time.Month(month))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (h *DataHandler) Journal(w http.ResponseWriter, r *http.Request) {
	events, err := h.Svc.Journal(r.Context(), userID(r), JournalLimit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
