// Package store defines the persistence boundary of the journal service.
// Users and collections live in PostgreSQL, entries and drafts in MongoDB;
// memstore provides an in-memory implementation of every interface.
package store

import (
	"context"
	"errors"

	"github.com/AnshRaj112/reflect-backend/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("already exists")
	// ErrForeignCollection is returned when an entry references a collection
	// the user does not own.
	ErrForeignCollection = errors.New("collection not found for this user")
)

type Users interface {
	// CreateUser stores a new user; the username must already be normalized.
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

type Collections interface {
	ListCollections(ctx context.Context, userID string) ([]models.Collection, error)
	GetCollection(ctx context.Context, userID, id string) (models.Collection, error)
	// CreateCollection assigns ID and CreatedAt. Names are unique per user,
	// ignoring case.
	CreateCollection(ctx context.Context, c models.Collection) (models.Collection, error)
	DeleteCollection(ctx context.Context, userID, id string) error
}

type Entries interface {
	// CreateEntry assigns ID and uses the timestamps from e.
	CreateEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error)
	GetEntry(ctx context.Context, userID, id string) (models.JournalEntry, error)
	// UpdateEntry replaces the editable fields and UpdatedAt; CreatedAt is kept.
	UpdateEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, id string) error
	// ListEntries returns one page, newest first, and the total matching count.
	ListEntries(ctx context.Context, userID string, f models.EntryFilter) ([]models.JournalEntry, int64, error)
	// UnsetCollection moves every entry of a collection to unorganized.
	UnsetCollection(ctx context.Context, userID, collectionID string) (int64, error)
}

type Drafts interface {
	GetDraft(ctx context.Context, userID string) (models.Draft, error)
	// SaveDraft overwrites the user's draft.
	SaveDraft(ctx context.Context, d models.Draft) error
	DeleteDraft(ctx context.Context, userID string) error
}

// Store bundles the stores the service needs.
type Store struct {
	Users       Users
	Collections Collections
	Entries     Entries
	Drafts      Drafts
}
