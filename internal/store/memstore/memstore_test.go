package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/store"
)

func TestCollectionNamesUniquePerUser(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.CreateCollection(ctx, models.Collection{UserID: "u1", Name: "Work"}); err != nil {
		t.Fatalf("CreateCollection() error: %v", err)
	}

	tests := []struct {
		name    string
		col     models.Collection
		wantErr error
	}{
		{name: "same name differs in case", col: models.Collection{UserID: "u1", Name: "WORK"}, wantErr: store.ErrDuplicate},
		{name: "same name other user", col: models.Collection{UserID: "u2", Name: "Work"}, wantErr: nil},
		{name: "different name", col: models.Collection{UserID: "u1", Name: "Travel"}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CreateCollection(ctx, tt.col)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateCollection() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got.ID == "" {
				t.Error("CreateCollection() did not assign an id")
			}
		})
	}

	cols, _ := s.ListCollections(ctx, "u1")
	if len(cols) != 2 || cols[0].Name != "Travel" || cols[1].Name != "Work" {
		t.Errorf("ListCollections() = %+v, want Travel and Work sorted by name", cols)
	}
}

func TestEntriesScopedToOwner(t *testing.T) {
	ctx := context.Background()
	s := New()

	e, err := s.CreateEntry(ctx, models.JournalEntry{UserID: "u1", Title: "Mine"})
	if err != nil {
		t.Fatalf("CreateEntry() error: %v", err)
	}
	if len(e.ID) != 24 {
		t.Errorf("entry id %q is not an ObjectID hex string", e.ID)
	}

	if _, err := s.GetEntry(ctx, "u2", e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetEntry() by other user error = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateEntry(ctx, models.JournalEntry{ID: e.ID, UserID: "u2"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateEntry() by other user error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteEntry(ctx, "u2", e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteEntry() by other user error = %v, want ErrNotFound", err)
	}
}

func TestUpdateEntryKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	e, _ := s.CreateEntry(ctx, models.JournalEntry{UserID: "u1", Title: "Old", CreatedAt: created})
	e.Title = "New"
	e.CreatedAt = time.Time{}
	got, err := s.UpdateEntry(ctx, e)
	if err != nil {
		t.Fatalf("UpdateEntry() error: %v", err)
	}
	if got.Title != "New" || !got.CreatedAt.Equal(created) {
		t.Errorf("UpdateEntry() = %+v", got)
	}
}

func TestListEntries(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	seed := []models.JournalEntry{
		{UserID: "u1", Title: "a", Mood: "happy", CollectionID: "c1", CreatedAt: base},
		{UserID: "u1", Title: "b", Mood: "sad", CreatedAt: base.Add(time.Hour)},
		{UserID: "u1", Title: "c", Mood: "happy", CreatedAt: base.Add(2 * time.Hour)},
		{UserID: "u2", Title: "x", Mood: "happy", CreatedAt: base.Add(3 * time.Hour)},
	}
	for _, e := range seed {
		if _, err := s.CreateEntry(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		filter    models.EntryFilter
		wantTitle []string
		wantTotal int64
	}{
		{name: "all newest first", filter: models.EntryFilter{}, wantTitle: []string{"c", "b", "a"}, wantTotal: 3},
		{name: "by collection", filter: models.EntryFilter{CollectionID: "c1"}, wantTitle: []string{"a"}, wantTotal: 1},
		{name: "unorganized", filter: models.EntryFilter{UnorganizedOnly: true}, wantTitle: []string{"c", "b"}, wantTotal: 2},
		{name: "by mood", filter: models.EntryFilter{Mood: "happy"}, wantTitle: []string{"c", "a"}, wantTotal: 2},
		{name: "paged", filter: models.EntryFilter{Limit: 1, Skip: 1}, wantTitle: []string{"b"}, wantTotal: 3},
		{name: "skip past end", filter: models.EntryFilter{Limit: 5, Skip: 10}, wantTitle: nil, wantTotal: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := s.ListEntries(ctx, "u1", tt.filter)
			if err != nil {
				t.Fatalf("ListEntries() error: %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(got) != len(tt.wantTitle) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.wantTitle))
			}
			for i, e := range got {
				if e.Title != tt.wantTitle[i] {
					t.Errorf("entry %d title = %q, want %q", i, e.Title, tt.wantTitle[i])
				}
			}
		})
	}
}

func TestUnsetCollection(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.CreateEntry(ctx, models.JournalEntry{UserID: "u1", CollectionID: "c1"})
	s.CreateEntry(ctx, models.JournalEntry{UserID: "u1", CollectionID: "c1"})
	s.CreateEntry(ctx, models.JournalEntry{UserID: "u2", CollectionID: "c1"})

	n, err := s.UnsetCollection(ctx, "u1", "c1")
	if err != nil || n != 2 {
		t.Fatalf("UnsetCollection() = %d, %v; want 2, nil", n, err)
	}
	_, total, _ := s.ListEntries(ctx, "u1", models.EntryFilter{UnorganizedOnly: true})
	if total != 2 {
		t.Errorf("unorganized entries = %d, want 2", total)
	}
	_, total, _ = s.ListEntries(ctx, "u2", models.EntryFilter{CollectionID: "c1"})
	if total != 1 {
		t.Errorf("other user's entries changed: %d left in c1", total)
	}
}

func TestDrafts(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.GetDraft(ctx, "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetDraft() error = %v, want ErrNotFound", err)
	}
	s.SaveDraft(ctx, models.Draft{UserID: "u1", Title: "one"})
	s.SaveDraft(ctx, models.Draft{UserID: "u1", Title: "two"})
	d, err := s.GetDraft(ctx, "u1")
	if err != nil || d.Title != "two" {
		t.Errorf("GetDraft() = %+v, %v; want the overwritten draft", d, err)
	}
	if err := s.DeleteDraft(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetDraft(ctx, "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetDraft() after delete error = %v", err)
	}
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := NewSessions()

	first, err := s.CreateSession(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	second, _ := s.CreateSession(ctx, "u1")

	if _, ok, _ := s.ValidateSession(ctx, first); ok {
		t.Error("old session still valid after a new login")
	}
	userID, ok, _ := s.ValidateSession(ctx, second)
	if !ok || userID != "u1" {
		t.Errorf("ValidateSession() = %q, %v", userID, ok)
	}

	s.InvalidateSession(ctx, second)
	if _, ok, _ := s.ValidateSession(ctx, second); ok {
		t.Error("session valid after invalidation")
	}
}
