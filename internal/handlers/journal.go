package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/reflect-backend/internal/models"
)

type JournalResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Journal models.JournalEntry `json:"journal"`
}

type GetJournalsResponse struct {
	Success  bool                  `json:"success"`
	Journals []models.JournalEntry `json:"journals"`
	Total    int64                 `json:"total"`
}

// entryFilter reads limit, skip and mood from the query string. Invalid
// numbers fall back to the service defaults.
func entryFilter(r *http.Request) models.EntryFilter {
	q := r.URL.Query()
	f := models.EntryFilter{Mood: q.Get("mood")}
	if v, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil {
		f.Limit = v
	}
	if v, err := strconv.ParseInt(q.Get("skip"), 10, 64); err == nil {
		f.Skip = v
	}
	return f
}

func (h *Handler) writeEntries(w http.ResponseWriter, r *http.Request, f models.EntryFilter) {
	entries, total, err := h.Journal.ListEntries(r.Context(), UserID(r.Context()), f)
	if err != nil {
		failure(w, r, err, "Collection not found", "Failed to fetch journals")
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, GetJournalsResponse{Success: true, Journals: entries, Total: total})
}

// GetJournals lists the caller's entries, newest first.
func (h *Handler) GetJournals(w http.ResponseWriter, r *http.Request) {
	h.writeEntries(w, r, entryFilter(r))
}

func (h *Handler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	var in models.EntryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	entry, err := h.Journal.CreateEntry(r.Context(), UserID(r.Context()), in)
	if err != nil {
		failure(w, r, err, "Journal not found", "Failed to create journal")
		return
	}
	writeJSON(w, http.StatusCreated, JournalResponse{
		Success: true,
		Message: "Journal entry created successfully",
		Journal: entry,
	})
}

func (h *Handler) GetJournal(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Journal.GetEntry(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		failure(w, r, err, "Journal not found", "Failed to fetch journal")
		return
	}
	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Journal: entry})
}

// UpdateJournal replaces an entry. The id in the path wins over any id in the body.
func (h *Handler) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	var in models.EntryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")
	entry, err := h.Journal.UpdateEntry(r.Context(), UserID(r.Context()), in)
	if err != nil {
		failure(w, r, err, "Journal not found", "Failed to update journal")
		return
	}
	writeJSON(w, http.StatusOK, JournalResponse{
		Success: true,
		Message: "Journal entry updated successfully",
		Journal: entry,
	})
}

func (h *Handler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	if err := h.Journal.DeleteEntry(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		failure(w, r, err, "Journal not found", "Failed to delete journal")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Journal entry deleted"})
}
