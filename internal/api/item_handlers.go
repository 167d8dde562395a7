package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritanta/cartmates/internal/middleware"
	"github.com/kritanta/cartmates/internal/service"
)

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.Get(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Quantity   int    `json:"quantity"`
		AssignedTo string `json:"assignedTo"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.items.Add(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()),
		service.AddItemParams{Name: req.Name, Quantity: req.Quantity, AssignedTo: req.AssignedTo})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// handleUpdateItem serves the dual-mode PUT route. A payload carrying
// isComplete is a pure completion toggle and short-circuits; anything else
// is an edit. The two cases are explicit service operations, the route only
// dispatches on payload shape.
func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsComplete *bool   `json:"isComplete"`
		Name       *string `json:"name"`
		Quantity   *int    `json:"quantity"`
		AssignedTo *string `json:"assignedTo"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	itemID := chi.URLParam(r, "id")
	requesterID := middleware.GetUserID(r.Context())

	if req.IsComplete != nil {
		item, err := h.items.SetCompletion(r.Context(), itemID, requesterID, *req.IsComplete)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
		return
	}

	item, err := h.items.Edit(r.Context(), itemID, requesterID, service.ItemPatch{
		Name:       req.Name,
		Quantity:   req.Quantity,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.items.Delete(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item removed"})
}
