package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/reflect-backend/internal/handlers"
	"github.com/AnshRaj112/reflect-backend/internal/journal"
	"github.com/AnshRaj112/reflect-backend/internal/store/memstore"
)

type apiClient struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	mem := memstore.New()
	h := &handlers.Handler{
		Journal:  journal.New(mem.Bundle(), nil),
		Users:    mem,
		Sessions: memstore.NewSessions(),
	}
	r := chi.NewRouter()
	SetupRoutes(r, h)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &apiClient{t: t, srv: srv}
}

func (c *apiClient) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	if err != nil {
		c.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.srv.Client().Do(req)
	if err != nil {
		c.t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (c *apiClient) login(username string) {
	c.t.Helper()
	creds := map[string]string{"username": username, "password": "correct horse"}
	if code := c.do(http.MethodPost, "/api/auth/signup", creds, nil); code != http.StatusCreated {
		c.t.Fatalf("signup status = %d", code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if code := c.do(http.MethodPost, "/api/auth/signin", creds, &resp); code != http.StatusOK {
		c.t.Fatalf("signin status = %d", code)
	}
	c.token = resp.Token
}

type entryJSON struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Mood           string `json:"mood"`
	MoodScore      int    `json:"mood_score"`
	MoodImageQuery string `json:"mood_image_query"`
	CollectionID   string `json:"collection_id"`
}

func TestHealthAndMoods(t *testing.T) {
	api := newAPI(t)

	resp, err := api.srv.Client().Get(api.srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	var moods struct {
		Moods []struct {
			ID string `json:"id"`
		} `json:"moods"`
	}
	if code := api.do(http.MethodGet, "/api/moods", nil, &moods); code != http.StatusOK {
		t.Fatalf("moods status = %d", code)
	}
	if len(moods.Moods) == 0 || moods.Moods[0].ID != "happy" {
		t.Errorf("moods = %+v", moods.Moods)
	}
}

func TestAuth(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		name string
		path string
		body map[string]string
		want int
	}{
		{name: "short username", path: "/api/auth/signup", body: map[string]string{"username": "ab", "password": "longenough"}, want: http.StatusBadRequest},
		{name: "short password", path: "/api/auth/signup", body: map[string]string{"username": "writer", "password": "short"}, want: http.StatusBadRequest},
		{name: "signup", path: "/api/auth/signup", body: map[string]string{"username": "Writer", "password": "longenough"}, want: http.StatusCreated},
		{name: "duplicate", path: "/api/auth/signup", body: map[string]string{"username": "writer", "password": "longenough"}, want: http.StatusConflict},
		{name: "wrong password", path: "/api/auth/signin", body: map[string]string{"username": "writer", "password": "wrongpass"}, want: http.StatusUnauthorized},
		{name: "unknown user", path: "/api/auth/signin", body: map[string]string{"username": "nobody", "password": "longenough"}, want: http.StatusUnauthorized},
		{name: "signin", path: "/api/auth/signin", body: map[string]string{"username": "WRITER", "password": "longenough"}, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := api.do(http.MethodPost, tt.path, tt.body, nil); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
		})
	}

	if code := api.do(http.MethodGet, "/api/journals", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("unauthenticated list status = %d", code)
	}
}

func TestMeAndSignout(t *testing.T) {
	api := newAPI(t)
	api.login("writer")

	var me struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if code := api.do(http.MethodGet, "/api/auth/me", nil, &me); code != http.StatusOK {
		t.Fatalf("me status = %d", code)
	}
	if me.User.Username != "writer" {
		t.Errorf("username = %q", me.User.Username)
	}

	if code := api.do(http.MethodPost, "/api/auth/signout", nil, nil); code != http.StatusOK {
		t.Fatalf("signout status = %d", code)
	}
	if code := api.do(http.MethodGet, "/api/auth/me", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("me after signout status = %d", code)
	}
}

func TestJournalLifecycle(t *testing.T) {
	api := newAPI(t)
	api.login("writer")

	var invalid struct {
		Errors map[string]string `json:"errors"`
	}
	if code := api.do(http.MethodPost, "/api/journals", map[string]string{"title": "t"}, &invalid); code != http.StatusBadRequest {
		t.Fatalf("invalid create status = %d", code)
	}
	if invalid.Errors["content"] == "" || invalid.Errors["mood"] == "" {
		t.Errorf("errors = %v", invalid.Errors)
	}

	var created struct {
		Journal entryJSON `json:"journal"`
	}
	body := map[string]interface{}{
		"title":      "Morning",
		"content":    "<p>sunny</p>",
		"mood":       "happy",
		"mood_score": 1,
	}
	if code := api.do(http.MethodPost, "/api/journals", body, &created); code != http.StatusCreated {
		t.Fatalf("create status = %d", code)
	}
	if created.Journal.MoodScore != 8 || created.Journal.MoodImageQuery != "happy joy sunshine" {
		t.Errorf("mood fields = %+v", created.Journal)
	}
	id := created.Journal.ID

	body["title"] = "Morning, edited"
	var updated struct {
		Journal entryJSON `json:"journal"`
	}
	if code := api.do(http.MethodPut, "/api/journals/"+id, body, &updated); code != http.StatusOK {
		t.Fatalf("update status = %d", code)
	}
	if updated.Journal.ID != id || updated.Journal.Title != "Morning, edited" {
		t.Errorf("updated = %+v", updated.Journal)
	}

	var list struct {
		Journals []entryJSON `json:"journals"`
		Total    int64       `json:"total"`
	}
	if code := api.do(http.MethodGet, "/api/journals?limit=10&mood=happy", nil, &list); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if list.Total != 1 || len(list.Journals) != 1 {
		t.Errorf("list = %+v", list)
	}

	if code := api.do(http.MethodDelete, "/api/journals/"+id, nil, nil); code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}
	if code := api.do(http.MethodGet, "/api/journals/"+id, nil, nil); code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", code)
	}
}

func TestEntriesAreScopedToOwner(t *testing.T) {
	api := newAPI(t)
	api.login("alice")

	var created struct {
		Journal entryJSON `json:"journal"`
	}
	api.do(http.MethodPost, "/api/journals", map[string]string{"title": "a", "content": "b", "mood": "calm"}, &created)

	api.login("mallory")
	if code := api.do(http.MethodGet, "/api/journals/"+created.Journal.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("foreign get status = %d", code)
	}
	if code := api.do(http.MethodDelete, "/api/journals/"+created.Journal.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("foreign delete status = %d", code)
	}
}

func TestCollections(t *testing.T) {
	api := newAPI(t)
	api.login("writer")

	var col struct {
		Collection struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"collection"`
	}
	if code := api.do(http.MethodPost, "/api/collections", map[string]string{"name": " Travel "}, &col); code != http.StatusCreated {
		t.Fatalf("create status = %d", code)
	}
	if col.Collection.Name != "Travel" {
		t.Errorf("name = %q", col.Collection.Name)
	}
	if code := api.do(http.MethodPost, "/api/collections", map[string]string{"name": "travel"}, nil); code != http.StatusConflict {
		t.Errorf("duplicate status = %d", code)
	}
	if code := api.do(http.MethodPost, "/api/collections", map[string]string{"name": " "}, nil); code != http.StatusBadRequest {
		t.Errorf("blank name status = %d", code)
	}

	entry := map[string]string{"title": "t", "content": "c", "mood": "calm", "collection_id": col.Collection.ID}
	api.do(http.MethodPost, "/api/journals", entry, nil)
	entry["collection_id"] = "unorganized"
	api.do(http.MethodPost, "/api/journals", entry, nil)

	var list struct {
		Journals []entryJSON `json:"journals"`
		Total    int64       `json:"total"`
	}
	if code := api.do(http.MethodGet, "/api/collections/"+col.Collection.ID+"/entries", nil, &list); code != http.StatusOK {
		t.Fatalf("collection entries status = %d", code)
	}
	if list.Total != 1 {
		t.Errorf("collection total = %d, want 1", list.Total)
	}

	if code := api.do(http.MethodDelete, "/api/collections/"+col.Collection.ID, nil, nil); code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}
	if code := api.do(http.MethodGet, "/api/collections/unorganized/entries", nil, &list); code != http.StatusOK {
		t.Fatalf("unorganized status = %d", code)
	}
	if list.Total != 2 {
		t.Errorf("unorganized total = %d, want 2", list.Total)
	}
	if code := api.do(http.MethodGet, "/api/collections/"+col.Collection.ID+"/entries", nil, nil); code != http.StatusNotFound {
		t.Errorf("deleted collection entries status = %d", code)
	}

	entry["collection_id"] = col.Collection.ID
	if code := api.do(http.MethodPost, "/api/journals", entry, nil); code != http.StatusBadRequest {
		t.Errorf("entry into deleted collection status = %d", code)
	}
}

func TestDrafts(t *testing.T) {
	api := newAPI(t)
	api.login("writer")

	var got struct {
		Draft *struct {
			Title string `json:"title"`
			Mood  string `json:"mood"`
		} `json:"draft"`
	}
	if code := api.do(http.MethodGet, "/api/drafts", nil, &got); code != http.StatusOK || got.Draft != nil {
		t.Fatalf("initial draft: status %d, draft %+v", code, got.Draft)
	}

	if code := api.do(http.MethodPut, "/api/drafts", map[string]string{"title": "half", "mood": "sad"}, nil); code != http.StatusOK {
		t.Fatalf("save status = %d", code)
	}
	api.do(http.MethodGet, "/api/drafts", nil, &got)
	if got.Draft == nil || got.Draft.Title != "half" || got.Draft.Mood != "sad" {
		t.Fatalf("draft = %+v", got.Draft)
	}

	api.do(http.MethodPut, "/api/drafts", map[string]string{}, nil)
	got.Draft = nil
	api.do(http.MethodGet, "/api/drafts", nil, &got)
	if got.Draft != nil {
		t.Errorf("draft after clear = %+v", got.Draft)
	}
}

func TestPaths(t *testing.T) {
	r := chi.NewRouter()
	SetupRoutes(r, &handlers.Handler{})
	joined := strings.Join(Paths(r), "\n")
	for _, want := range []string{"GET /health", "GET /health/ready", "PUT /api/drafts", "DELETE /api/journals/{id}", "GET /api/collections/{id}/entries"} {
		if !strings.Contains(joined, want) {
			t.Errorf("route %q not registered", want)
		}
	}
}
