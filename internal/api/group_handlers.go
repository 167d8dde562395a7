package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritanta/cartmates/internal/middleware"
)

func (h *Handler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		IsPersonal bool   `json:"isPersonal"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := h.groups.Create(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.IsPersonal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *Handler) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.Get(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *Handler) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := h.groups.Rename(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *Handler) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.Join(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *Handler) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.Leave(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "left group"})
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.RemoveMember(r.Context(),
		chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "userID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *Handler) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.Delete(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "group deleted"})
}

// handleInvite serves the invite link. Anonymous visitors get a preview and
// a login_required status; authenticated visitors are joined (or told they
// already belong). Redeeming is idempotent.
func (h *Handler) handleInvite(w http.ResponseWriter, r *http.Request) {
	result, err := h.invites.Redeem(r.Context(), chi.URLParam(r, "token"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
