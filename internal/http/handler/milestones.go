package handler

import (
	"net/http"

	"streakboard/internal/tracker"

	"github.com/go-chi/chi/v5"
)

type MilestoneHandler struct {
	Svc *tracker.Service
}

type addMilestoneReq struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	TargetDate string `json:"targetDate"`
	Category   string `json:"category"`
	Priority   string `json:"priority"`
}

func (h *MilestoneHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addMilestoneReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	doc, id, err := h.Svc.AddMilestone(r.Context(), userID(r), tracker.NewMilestone(req))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, map[string]any{"id": id})
}

// Delete and Toggle address an entry by id or by its position in the
// combined milestones array.
func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.DeleteMilestone(r.Context(), userID(r), chi.URLParam(r, "ref"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}

func (h *MilestoneHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.ToggleMilestone(r.Context(), userID(r), chi.URLParam(r, "ref"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}
