package handler

import (
	"net/http"

	"streakboard/internal/tracker"
)

type TaskHandler struct {
	Svc *tracker.Service
}

type addTaskReq struct {
	CategoryIndex *int   `json:"categoryIndex"`
	Task          string `json:"task"`
	Recurring     bool   `json:"recurring"`
}

func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addTaskReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.CategoryIndex == nil {
		writeError(w, http.StatusBadRequest, "Category and task required")
		return
	}
	doc, err := h.Svc.AddTask(r.Context(), userID(r), *req.CategoryIndex, req.Task, req.Recurring)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.DeleteTask(r.Context(), userID(r), intParam(r, "cat"), intParam(r, "task"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.ToggleTask(r.Context(), userID(r), intParam(r, "cat"), intParam(r, "task"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}

func (h *TaskHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.ClearAll(r.Context(), userID(r))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}

type addCategoryReq struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (h *TaskHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	doc, err := h.Svc.AddCategory(r.Context(), userID(r), req.Name, req.Icon)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}

func (h *TaskHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.DeleteCategory(r.Context(), userID(r), intParam(r, "index"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeDocument(w, doc, nil)
}
