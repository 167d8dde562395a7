package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritanta/cartmates/internal/middleware"
)

func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.ListWindow(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) handleRecentActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.ListRecent(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
