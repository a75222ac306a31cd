package models

import "time"

// Draft is the single unpublished entry a user may keep. Saving overwrites it.
type Draft struct {
	UserID    string    `bson:"_id" json:"-"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Mood      string    `bson:"mood" json:"mood"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DraftInput is the payload of the save-draft operation.
type DraftInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

// IsEmpty reports whether every field is blank. An empty draft is what a
// successful publish leaves behind.
func (d DraftInput) IsEmpty() bool {
	return d.Title == "" && d.Content == "" && d.Mood == ""
}
