package authoring

import (
	"context"

	"github.com/AnshRaj112/reflect-backend/internal/models"
)

// Actions are the remote operations the workflow depends on. Every call
// names the user it acts for.
type Actions interface {
	ListCollections(ctx context.Context, userID string) ([]models.Collection, error)
	CreateCollection(ctx context.Context, userID string, in models.CollectionInput) (models.Collection, error)
	// GetEntry fails when the entry does not exist or belongs to someone else.
	GetEntry(ctx context.Context, userID, id string) (models.JournalEntry, error)
	// GetDraft returns nil and no error when the user has no draft.
	GetDraft(ctx context.Context, userID string) (*models.Draft, error)
	SaveDraft(ctx context.Context, userID string, in models.DraftInput) error
	CreateEntry(ctx context.Context, userID string, in models.EntryInput) (models.JournalEntry, error)
	UpdateEntry(ctx context.Context, userID string, in models.EntryInput) (models.JournalEntry, error)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}
