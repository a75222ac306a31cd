package models

import (
	"time"
)

// JournalEntry is a published journal record. The ID is an ObjectID hex
// string so it can travel through URLs unchanged.
type JournalEntry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Mood           string    `json:"mood"`
	MoodScore      int       `json:"mood_score"`
	MoodImageQuery string    `json:"mood_image_query"`
	CollectionID   string    `json:"collection_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EntryInput is the payload of the create and update operations.
// ID is only set for updates.
type EntryInput struct {
	ID             string `json:"id,omitempty"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Mood           string `json:"mood"`
	MoodScore      int    `json:"mood_score"`
	MoodImageQuery string `json:"mood_image_query"`
	CollectionID   string `json:"collection_id,omitempty"`
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	// CollectionID selects one collection; UnorganizedOnly selects entries without one.
	CollectionID    string
	UnorganizedOnly bool
	Mood            string
	Limit           int64
	Skip            int64
}
