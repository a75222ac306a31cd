package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/store"
)

type CollectionResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Collection models.Collection `json:"collection"`
}

type GetCollectionsResponse struct {
	Success     bool                `json:"success"`
	Collections []models.Collection `json:"collections"`
}

// GetCollections lists the caller's collections sorted by name.
func (h *Handler) GetCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := h.Journal.ListCollections(r.Context(), UserID(r.Context()))
	if err != nil {
		failure(w, r, err, "", "Failed to fetch collections")
		return
	}
	if cols == nil {
		cols = []models.Collection{}
	}
	writeJSON(w, http.StatusOK, GetCollectionsResponse{Success: true, Collections: cols})
}

func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var in models.CollectionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	col, err := h.Journal.CreateCollection(r.Context(), UserID(r.Context()), in)
	if errors.Is(err, store.ErrDuplicate) {
		writeError(w, http.StatusConflict, "A collection with this name already exists")
		return
	}
	if err != nil {
		failure(w, r, err, "", "Failed to create collection")
		return
	}
	writeJSON(w, http.StatusCreated, CollectionResponse{
		Success:    true,
		Message:    "Collection created successfully",
		Collection: col,
	})
}

// DeleteCollection removes a collection and leaves its entries unorganized.
func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	if err := h.Journal.DeleteCollection(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		failure(w, r, err, "Collection not found", "Failed to delete collection")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Collection deleted"})
}

// GetCollectionEntries lists the entries of one collection. The id
// "unorganized" selects entries that belong to no collection.
func (h *Handler) GetCollectionEntries(w http.ResponseWriter, r *http.Request) {
	f := entryFilter(r)
	f.CollectionID = chi.URLParam(r, "id")
	h.writeEntries(w, r, f)
}
