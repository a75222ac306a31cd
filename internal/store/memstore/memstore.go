// Package memstore keeps users, collections, entries, drafts and sessions in
// memory. The server uses it when STORAGE=memory; tests use it in place of
// the databases.
package memstore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/store"
)

// Store implements store.Users, store.Collections, store.Entries and store.Drafts.
type Store struct {
	mu          sync.RWMutex
	users       map[string]models.User
	collections map[string]models.Collection
	entries     map[string]models.JournalEntry
	drafts      map[string]models.Draft
	now         func() time.Time
}

func New() *Store {
	return &Store{
		users:       make(map[string]models.User),
		collections: make(map[string]models.Collection),
		entries:     make(map[string]models.JournalEntry),
		drafts:      make(map[string]models.Draft),
		now:         time.Now,
	}
}

// Bundle returns s wired into every slot of a store.Store.
func (s *Store) Bundle() *store.Store {
	return &store.Store{Users: s, Collections: s, Entries: s, Drafts: s}
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return models.User{}, store.ErrDuplicate
		}
	}
	u := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
		IsActive:     true,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Collection{}
	for _, c := range s.collections {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Store) GetCollection(ctx context.Context, userID, id string) (models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[id]
	if !ok || c.UserID != userID {
		return models.Collection{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Store) CreateCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.collections {
		if existing.UserID == c.UserID && strings.EqualFold(existing.Name, c.Name) {
			return models.Collection{}, store.ErrDuplicate
		}
	}
	c.ID = uuid.New().String()
	c.CreatedAt = s.now()
	s.collections[c.ID] = c
	return c, nil
}

func (s *Store) DeleteCollection(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[id]
	if !ok || c.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.collections, id)
	return nil
}

func (s *Store) CreateEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = primitive.NewObjectID().Hex()
	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) GetEntry(ctx context.Context, userID, id string) (models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return models.JournalEntry{}, store.ErrNotFound
	}
	return e, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.entries[e.ID]
	if !ok || old.UserID != e.UserID {
		return models.JournalEntry{}, store.ErrNotFound
	}
	e.CreatedAt = old.CreatedAt
	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) DeleteEntry(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) ListEntries(ctx context.Context, userID string, f models.EntryFilter) ([]models.JournalEntry, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.JournalEntry
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		if f.UnorganizedOnly && e.CollectionID != "" {
			continue
		}
		if f.CollectionID != "" && e.CollectionID != f.CollectionID {
			continue
		}
		if f.Mood != "" && e.Mood != f.Mood {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := min(f.Skip, total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}
	page := make([]models.JournalEntry, 0, end-start)
	page = append(page, matched[start:end]...)
	return page, total, nil
}

func (s *Store) UnsetCollection(ctx context.Context, userID, collectionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, e := range s.entries {
		if e.UserID == userID && e.CollectionID == collectionID {
			e.CollectionID = ""
			s.entries[id] = e
			n++
		}
	}
	return n, nil
}

func (s *Store) GetDraft(ctx context.Context, userID string) (models.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[userID]
	if !ok {
		return models.Draft{}, store.ErrNotFound
	}
	return d, nil
}

func (s *Store) SaveDraft(ctx context.Context, d models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.UserID] = d
	return nil
}

func (s *Store) DeleteDraft(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}

// Sessions maps opaque tokens to user ids, one live token per user.
type Sessions struct {
	mu      sync.Mutex
	byToken map[string]string
	byUser  map[string]string
}

func NewSessions() *Sessions {
	return &Sessions{byToken: make(map[string]string), byUser: make(map[string]string)}
}

func (s *Sessions) CreateSession(ctx context.Context, userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[userID]; ok {
		delete(s.byToken, old)
	}
	s.byToken[token] = userID
	s.byUser[userID] = token
	return token, nil
}

func (s *Sessions) ValidateSession(ctx context.Context, token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.byToken[token]
	return userID, ok, nil
}

func (s *Sessions) InvalidateSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID, ok := s.byToken[token]; ok {
		delete(s.byUser, userID)
		delete(s.byToken, token)
	}
	return nil
}
