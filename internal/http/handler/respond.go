package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"streakboard/internal/auth"
	"streakboard/internal/habit"
	"streakboard/internal/store"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure maps domain rejections to 400 and logs anything else as a
// server error.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case habit.IsRejection(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "document not found")
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

// writeDocument is the reply to every server-side transition.
func writeDocument(w http.ResponseWriter, doc *habit.Document, extra map[string]any) {
	body := map[string]any{
		"success": true,
		"data":    doc.Public(),
	}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func userID(r *http.Request) uint64 {
	uid, _ := auth.UserIDFromContext(r.Context())
	return uid
}

// intParam reads an integer route parameter. Malformed values become -1 so
// the range check downstream rejects them.
func intParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return -1
	}
	return v
}
