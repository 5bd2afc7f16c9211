package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/imaging"
	"github.com/erazemk/shramba/internal/location"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/query"
	"github.com/erazemk/shramba/internal/store"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	DB     *sql.DB
	Engine *location.Engine
	Facade *query.Facade
}

type createItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ItemTypeID  string   `json:"item_type_id"`
	Tags        []string `json:"tags"`
}

type updateItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ItemTypeID  string   `json:"item_type_id"`
	Tags        []string `json:"tags"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	items, err := store.ListItems(r.Context(), h.DB, search)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.Name, req.Description, req.ItemTypeID, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}, returning the item's composite overview.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Facade.ItemOverview(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, overview)
}

// GetByCode handles GET /api/items/code/{code}, the QR scan lookup path.
func (h *ItemsHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Facade.ItemOverviewByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, overview)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if item == nil || item.DeletedAt != nil {
		writeError(w, location.ErrItemNotFound)
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, req.Name, req.Description, req.ItemTypeID, req.Tags); err != nil {
		writeError(w, err)
		return
	}

	updated, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}. Deleting an item that still
// contains other items is refused.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteItem(r.Context(), h.DB, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// GetHistory handles GET /api/items/{id}/history.
func (h *ItemsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Engine.History(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []model.LocationHistory{}
	}
	jsonResponse(w, http.StatusOK, history)
}

// GetChain handles GET /api/items/{id}/chain, returning the ordered
// container chain from the item's immediate container to the root.
func (h *ItemsHandler) GetChain(w http.ResponseWriter, r *http.Request) {
	chain, err := h.Engine.Chain(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if chain == nil {
		chain = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, chain)
}

// GetContents handles GET /api/items/{id}/contents, returning the items
// directly stored in this item.
func (h *ItemsHandler) GetContents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if item == nil {
		writeError(w, location.ErrItemNotFound)
		return
	}

	contents, err := h.Engine.Contents(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if contents == nil {
		contents = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, contents)
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if item == nil || item.DeletedAt != nil {
		writeError(w, location.ErrItemNotFound)
		return
	}

	// Limit to 10 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, result.Data, result.Thumb, result.MIME); err != nil {
		writeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image. Pass ?thumb=1 for the
// thumbnail variant.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	thumb := r.URL.Query().Get("thumb") == "1"

	data, mime, err := store.GetItemImage(r.Context(), h.DB, r.PathValue("id"), thumb)
	if err != nil {
		writeError(w, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
