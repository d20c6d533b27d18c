package handler

import (
	"errors"
	"net/http"

	"streakboard/internal/auth"
	"streakboard/internal/store"
	"streakboard/internal/tracker"

	"gorm.io/gorm"
)

type AuthHandler struct {
	Auth         *auth.Service
	Tracker      *tracker.Service
	CookieSecure bool
}

type credentialsReq struct {
	Username string `json:"username"`
	Passcode string `json:"passcode"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	u, token, err := h.Auth.Register(r.Context(), req.Username, req.Passcode, func(tx *gorm.DB, u *auth.User) error {
		return h.Tracker.WithStore(&store.Store{DB: tx}).Provision(r.Context(), u.ID)
	})
	switch {
	case errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrInvalidPasscode),
		errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeFailure(w, r, err)
		return
	}

	h.startSession(w, u, token)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	u, token, err := h.Auth.Login(r.Context(), req.Username, req.Passcode)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		writeFailure(w, r, err)
		return
	}

	h.startSession(w, u, token)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.SessionCookie("", h.CookieSecure))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) startSession(w http.ResponseWriter, u *auth.User, token string) {
	http.SetCookie(w, auth.SessionCookie(token, h.CookieSecure))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"username": u.Username,
		"token":    token,
	})
}
