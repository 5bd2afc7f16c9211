package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/location"
)

// LocationsHandler handles the location graph endpoints.
type LocationsHandler struct {
	DB     *sql.DB
	Engine *location.Engine
}

type setLocationRequest struct {
	ItemID         string `json:"item_id"`
	LocationItemID string `json:"location_item_id"`
}

// Set handles POST /api/locations, placing an item inside another item.
func (h *LocationsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == "" || req.LocationItemID == "" {
		jsonError(w, http.StatusBadRequest, "item_id and location_item_id required")
		return
	}

	if err := h.Engine.SetCurrentLocation(r.Context(), req.ItemID, req.LocationItemID); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "location set"})
}

// Clear handles DELETE /api/locations/{itemId}, marking the item's location
// as unknown. The placement being cleared still lands in the history ledger.
func (h *LocationsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.SetCurrentLocation(r.Context(), r.PathValue("itemId"), ""); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "location cleared"})
}

// GetCurrent handles GET /api/locations/current/{itemId}, returning the item
// directly containing the given item, or 404 if it has no known location.
func (h *LocationsHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	container, err := h.Engine.CurrentLocation(r.Context(), r.PathValue("itemId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if container == nil {
		jsonError(w, http.StatusNotFound, "item has no known location")
		return
	}
	jsonResponse(w, http.StatusOK, container)
}
