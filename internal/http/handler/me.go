package handler

import (
	"errors"
	"net/http"

	"streakboard/internal/auth"

	"gorm.io/gorm"
)

type MeHandler struct {
	DB *gorm.DB
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	var u auth.User
	if err := h.DB.WithContext(r.Context()).First(&u, userID(r)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusUnauthorized, "Not logged in")
			return
		}
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"userId":   u.ID,
		"username": u.Username,
	})
}
