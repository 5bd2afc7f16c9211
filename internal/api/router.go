package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/location"
	"github.com/erazemk/shramba/internal/query"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, engine *location.Engine, facade *query.Facade) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{DB: db, Engine: engine, Facade: facade}
	itemTypesHandler := &ItemTypesHandler{DB: db}
	locationsHandler := &LocationsHandler{DB: db, Engine: engine}

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/code/{code}", itemsHandler.GetByCode)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("PUT /api/items/{id}/image", itemsHandler.UploadImage)
	mux.HandleFunc("GET /api/items/{id}/image", itemsHandler.GetImage)
	mux.HandleFunc("GET /api/items/{id}/history", itemsHandler.GetHistory)
	mux.HandleFunc("GET /api/items/{id}/chain", itemsHandler.GetChain)
	mux.HandleFunc("GET /api/items/{id}/contents", itemsHandler.GetContents)

	// Locations.
	mux.HandleFunc("POST /api/locations", locationsHandler.Set)
	mux.HandleFunc("DELETE /api/locations/{itemId}", locationsHandler.Clear)
	mux.HandleFunc("GET /api/locations/current/{itemId}", locationsHandler.GetCurrent)

	// Item types.
	mux.HandleFunc("GET /api/itemtypes", itemTypesHandler.List)
	mux.HandleFunc("POST /api/itemtypes", itemTypesHandler.Create)
	mux.HandleFunc("GET /api/itemtypes/{id}", itemTypesHandler.Get)
	mux.HandleFunc("PUT /api/itemtypes/{id}", itemTypesHandler.Update)
	mux.HandleFunc("DELETE /api/itemtypes/{id}", itemTypesHandler.Delete)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			jsonError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
