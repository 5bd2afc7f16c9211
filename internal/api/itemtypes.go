package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// ItemTypesHandler handles item type CRUD endpoints.
type ItemTypesHandler struct {
	DB *sql.DB
}

type itemTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List handles GET /api/itemtypes.
func (h *ItemTypesHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := store.ListItemTypes(r.Context(), h.DB)
	if err != nil {
		writeError(w, err)
		return
	}
	if types == nil {
		types = []model.ItemType{}
	}
	jsonResponse(w, http.StatusOK, types)
}

// Create handles POST /api/itemtypes.
func (h *ItemTypesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := store.CreateItemType(r.Context(), h.DB, req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, t)
}

// Get handles GET /api/itemtypes/{id}.
func (h *ItemTypesHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := store.GetItemType(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if t == nil {
		jsonError(w, http.StatusNotFound, "item type not found")
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

// Update handles PUT /api/itemtypes/{id}.
func (h *ItemTypesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req itemTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := store.GetItemType(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if t == nil {
		jsonError(w, http.StatusNotFound, "item type not found")
		return
	}

	if err := store.UpdateItemType(r.Context(), h.DB, id, req.Name, req.Description); err != nil {
		writeError(w, err)
		return
	}

	updated, _ := store.GetItemType(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/itemtypes/{id}. Types still referenced by
// items cannot be deleted.
func (h *ItemTypesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteItemType(r.Context(), h.DB, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item type deleted"})
}
