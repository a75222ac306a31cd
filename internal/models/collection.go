package models

import "time"

// UnorganizedCollectionID names the pseudo collection holding entries
// without a collection.
const UnorganizedCollectionID = "unorganized"

// Collection is a named grouping of a user's entries.
type Collection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CollectionInput is the payload of the create-collection operation.
type CollectionInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
