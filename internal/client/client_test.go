package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/reflect-backend/internal/authoring"
	"github.com/AnshRaj112/reflect-backend/internal/handlers"
	"github.com/AnshRaj112/reflect-backend/internal/journal"
	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/routes"
	"github.com/AnshRaj112/reflect-backend/internal/store/memstore"
)

var _ authoring.Actions = (*Client)(nil)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mem := memstore.New()
	r := chi.NewRouter()
	routes.SetupRoutes(r, &handlers.Handler{
		Journal:  journal.New(mem.Bundle(), nil),
		Users:    mem,
		Sessions: memstore.NewSessions(),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func signedIn(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	ctx := context.Background()
	c := New(srv.URL, "")
	if _, err := c.SignUp(ctx, "writer", "correct horse"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, _, err := c.SignIn(ctx, "writer", "correct horse"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	return c
}

func TestSignInAndMe(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := signedIn(t, srv)

	token := c.token
	if token == "" || c.UserID() == "" {
		t.Fatal("SignIn left no session")
	}

	fresh := New(srv.URL, token)
	user, err := fresh.Me(ctx)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.ID != c.UserID() || fresh.UserID() != user.ID {
		t.Errorf("Me user = %q, want %q", user.ID, c.UserID())
	}

	if err := fresh.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := New(srv.URL, token).Me(ctx); err == nil {
		t.Error("token still valid after SignOut")
	}
}

func TestServerMessageIsTheError(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL, "")
	_, _, err := c.SignIn(context.Background(), "nobody", "whatever1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized || err.Error() != "Invalid username or password" {
		t.Errorf("err = %d %q", apiErr.Status, err.Error())
	}
}

func TestEntryAndDraftCalls(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := signedIn(t, srv)
	uid := c.UserID()

	d, err := c.GetDraft(ctx, uid)
	if err != nil || d != nil {
		t.Fatalf("GetDraft = %+v, %v; want nil, nil", d, err)
	}
	if err := c.SaveDraft(ctx, uid, models.DraftInput{Title: "half"}); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	d, err = c.GetDraft(ctx, uid)
	if err != nil || d == nil || d.Title != "half" {
		t.Fatalf("GetDraft = %+v, %v", d, err)
	}

	col, err := c.CreateCollection(ctx, uid, models.CollectionInput{Name: "Travel"})
	if err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if _, err := c.CreateCollection(ctx, uid, models.CollectionInput{Name: "travel"}); err == nil ||
		err.Error() != "A collection with this name already exists" {
		t.Errorf("duplicate collection err = %v", err)
	}
	cols, err := c.ListCollections(ctx, uid)
	if err != nil || len(cols) != 1 {
		t.Fatalf("ListCollections = %v, %v", cols, err)
	}

	entry, err := c.CreateEntry(ctx, uid, models.EntryInput{
		Title: "Trip", Content: "<p>sea</p>", Mood: "excited", CollectionID: col.ID,
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if entry.MoodScore != 9 {
		t.Errorf("mood score = %d", entry.MoodScore)
	}

	got, err := c.GetEntry(ctx, uid, entry.ID)
	if err != nil || got.Title != "Trip" {
		t.Fatalf("GetEntry = %+v, %v", got, err)
	}

	updated, err := c.UpdateEntry(ctx, uid, models.EntryInput{
		ID: entry.ID, Title: "Trip home", Content: "<p>sea</p>", Mood: "tired",
	})
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if updated.Title != "Trip home" || updated.CollectionID != "" {
		t.Errorf("updated = %+v", updated)
	}

	entries, total, err := c.ListEntries(ctx, models.UnorganizedCollectionID, 10, 0)
	if err != nil || total != 1 || len(entries) != 1 {
		t.Errorf("ListEntries(unorganized) = %d entries, total %d, %v", len(entries), total, err)
	}

	if _, err := c.GetEntry(ctx, uid, "missing"); !IsNotFound(err) {
		t.Errorf("GetEntry(missing) err = %v, want not found", err)
	}
}

func TestCallsForAnotherUserAreRejected(t *testing.T) {
	srv := newServer(t)
	c := signedIn(t, srv)
	ctx := context.Background()

	if _, err := c.ListCollections(ctx, "someone-else"); !errors.Is(err, ErrWrongUser) {
		t.Errorf("ListCollections err = %v", err)
	}
	if err := c.SaveDraft(ctx, "someone-else", models.DraftInput{Title: "x"}); !errors.Is(err, ErrWrongUser) {
		t.Errorf("SaveDraft err = %v", err)
	}
}

func TestGetDraftNotFoundIsNoDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Draft not found"}`))
	}))
	defer srv.Close()

	d, err := New(srv.URL, "t").GetDraft(context.Background(), "u1")
	if err != nil || d != nil {
		t.Errorf("GetDraft = %+v, %v; want nil, nil", d, err)
	}
}
