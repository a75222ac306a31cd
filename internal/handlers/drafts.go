package handlers

import (
	"net/http"

	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/moods"
)

// DraftResponse carries a null draft when the user has none.
type DraftResponse struct {
	Success bool          `json:"success"`
	Draft   *models.Draft `json:"draft"`
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.Journal.GetDraft(r.Context(), UserID(r.Context()))
	if err != nil {
		failure(w, r, err, "", "Failed to fetch draft")
		return
	}
	writeJSON(w, http.StatusOK, DraftResponse{Success: true, Draft: d})
}

// SaveDraft overwrites the caller's draft. An all-empty body clears it.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var in models.DraftInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.Journal.SaveDraft(r.Context(), UserID(r.Context()), in); err != nil {
		failure(w, r, err, "", "Failed to save draft")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Draft saved"})
}

type MoodsResponse struct {
	Success bool         `json:"success"`
	Moods   []moods.Mood `json:"moods"`
}

// GetMoods serves the mood catalog. It needs no session.
func (h *Handler) GetMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MoodsResponse{Success: true, Moods: moods.All()})
}
