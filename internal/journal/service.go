// Package journal implements the entry, draft and collection operations on
// top of the stores. Every method acts for the user id it is given and never
// touches another user's records.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/reflect-backend/internal/logger"
	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/moods"
	"github.com/AnshRaj112/reflect-backend/internal/store"
	"github.com/AnshRaj112/reflect-backend/internal/validation"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Cache holds per-user collection lists. Misses and failures fall through
// to the store.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	collections store.Collections
	entries     store.Entries
	drafts      store.Drafts
	cache       Cache
	now         func() time.Time
}

// New returns a Service over st. cache may be nil.
func New(st *store.Store, cache Cache) *Service {
	return &Service{
		collections: st.Collections,
		entries:     st.Entries,
		drafts:      st.Drafts,
		cache:       cache,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func collectionsKey(userID string) string {
	return "collections:" + userID
}

func (s *Service) invalidateCollections(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, collectionsKey(userID)); err != nil {
		logger.Warn("failed to invalidate collection cache", "user_id", userID, "error", err)
	}
}

func (s *Service) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	if s.cache != nil {
		var cached []models.Collection
		if hit, err := s.cache.Get(ctx, collectionsKey(userID), &cached); err == nil && hit {
			return cached, nil
		}
	}

	cols, err := s.collections.ListCollections(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, collectionsKey(userID), cols); err != nil {
			logger.Warn("failed to cache collections", "user_id", userID, "error", err)
		}
	}
	return cols, nil
}

func (s *Service) GetCollection(ctx context.Context, userID, id string) (models.Collection, error) {
	return s.collections.GetCollection(ctx, userID, id)
}

// CreateCollection validates and stores a collection. A name already used by
// the same user, in any letter case, fails with store.ErrDuplicate.
func (s *Service) CreateCollection(ctx context.Context, userID string, in models.CollectionInput) (models.Collection, error) {
	if err := validation.ValidateCollectionName(in.Name).OrNil(); err != nil {
		return models.Collection{}, err
	}
	col, err := s.collections.CreateCollection(ctx, models.Collection{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	})
	if err != nil {
		return models.Collection{}, err
	}
	s.invalidateCollections(ctx, userID)
	return col, nil
}

// DeleteCollection removes a collection. Its entries become unorganized.
func (s *Service) DeleteCollection(ctx context.Context, userID, id string) error {
	if _, err := s.collections.GetCollection(ctx, userID, id); err != nil {
		return err
	}
	moved, err := s.entries.UnsetCollection(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.collections.DeleteCollection(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateCollections(ctx, userID)
	logger.Debug("collection deleted", "user_id", userID, "collection_id", id, "entries_moved", moved)
	return nil
}

func (s *Service) GetEntry(ctx context.Context, userID, id string) (models.JournalEntry, error) {
	return s.entries.GetEntry(ctx, userID, id)
}

// ListEntries returns a page of the user's entries. A CollectionID of
// models.UnorganizedCollectionID selects entries without a collection; any
// other CollectionID must name one of the user's collections.
func (s *Service) ListEntries(ctx context.Context, userID string, f models.EntryFilter) ([]models.JournalEntry, int64, error) {
	switch {
	case f.CollectionID == models.UnorganizedCollectionID:
		f.CollectionID = ""
		f.UnorganizedOnly = true
	case f.CollectionID != "":
		if _, err := s.collections.GetCollection(ctx, userID, f.CollectionID); err != nil {
			return nil, 0, err
		}
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	return s.entries.ListEntries(ctx, userID, f)
}

// prepareEntry validates in and fills the fields the server owns. Mood score
// and image query always come from the catalog, whatever the client sent.
func (s *Service) prepareEntry(ctx context.Context, userID string, in models.EntryInput) (models.JournalEntry, error) {
	if err := validation.ValidateEntry(validation.EntryFields{
		Title:        in.Title,
		Content:      in.Content,
		Mood:         in.Mood,
		CollectionID: in.CollectionID,
	}).OrNil(); err != nil {
		return models.JournalEntry{}, err
	}

	collectionID := strings.TrimSpace(in.CollectionID)
	if collectionID == models.UnorganizedCollectionID {
		collectionID = ""
	}
	if collectionID != "" {
		if _, err := s.collections.GetCollection(ctx, userID, collectionID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.JournalEntry{}, store.ErrForeignCollection
			}
			return models.JournalEntry{}, err
		}
	}

	mood := moods.MustLookup(in.Mood)
	now := s.now()
	return models.JournalEntry{
		ID:             in.ID,
		UserID:         userID,
		Title:          in.Title,
		Content:        in.Content,
		Mood:           mood.ID,
		MoodScore:      mood.Score,
		MoodImageQuery: mood.ImageQuery,
		CollectionID:   collectionID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *Service) CreateEntry(ctx context.Context, userID string, in models.EntryInput) (models.JournalEntry, error) {
	in.ID = ""
	e, err := s.prepareEntry(ctx, userID, in)
	if err != nil {
		return models.JournalEntry{}, err
	}
	created, err := s.entries.CreateEntry(ctx, e)
	if err != nil {
		return models.JournalEntry{}, err
	}
	logger.Info("entry created", "user_id", userID, "entry_id", created.ID, "mood", created.Mood)
	return created, nil
}

func (s *Service) UpdateEntry(ctx context.Context, userID string, in models.EntryInput) (models.JournalEntry, error) {
	if in.ID == "" {
		return models.JournalEntry{}, fmt.Errorf("entry id is required: %w", store.ErrNotFound)
	}
	e, err := s.prepareEntry(ctx, userID, in)
	if err != nil {
		return models.JournalEntry{}, err
	}
	updated, err := s.entries.UpdateEntry(ctx, e)
	if err != nil {
		return models.JournalEntry{}, err
	}
	logger.Info("entry updated", "user_id", userID, "entry_id", updated.ID)
	return updated, nil
}

func (s *Service) DeleteEntry(ctx context.Context, userID, id string) error {
	return s.entries.DeleteEntry(ctx, userID, id)
}

// GetDraft returns the user's draft, or nil when there is none. A stored
// draft with every field empty counts as none.
func (s *Service) GetDraft(ctx context.Context, userID string) (*models.Draft, error) {
	d, err := s.drafts.GetDraft(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if d.Title == "" && d.Content == "" && d.Mood == "" {
		return nil, nil
	}
	return &d, nil
}

// SaveDraft overwrites the user's draft. Saving an empty draft clears it.
// Drafts are not validated; any field may be blank.
func (s *Service) SaveDraft(ctx context.Context, userID string, in models.DraftInput) error {
	if in.IsEmpty() {
		return s.drafts.DeleteDraft(ctx, userID)
	}
	return s.drafts.SaveDraft(ctx, models.Draft{
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		Mood:      in.Mood,
		UpdatedAt: s.now(),
	})
}
