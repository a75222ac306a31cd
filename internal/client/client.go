// Package client calls the Reflect HTTP API on behalf of one signed-in user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/AnshRaj112/reflect-backend/internal/logger"
	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/moods"
)

const defaultTimeout = 30 * time.Second

// ErrWrongUser is returned when a call names a user other than the session's.
var ErrWrongUser = errors.New("request is for a different user than the signed-in one")

// APIError is a non-2xx answer. Error returns the server's message so it can
// be shown to the user as-is.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL string
	token   string
	userID  string
	http    *http.Client
}

// New returns a Client for the API at baseURL using the session token.
// token may be empty for the sign-up and sign-in calls.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// UserID is the id of the signed-in user, known after SignIn or Me.
func (c *Client) UserID() string { return c.userID }

func (c *Client) checkUser(userID string) error {
	if c.userID != "" && userID != c.userID {
		return ErrWrongUser
	}
	return nil
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger.Debug("api request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach the server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return &APIError{Status: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unexpected response from server: %w", err)
	}
	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) SignUp(ctx context.Context, username, password string) (models.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", credentials{username, password}, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// SignIn starts a session and uses its token for every later call.
func (c *Client) SignIn(ctx context.Context, username, password string) (string, models.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", credentials{username, password}, &resp); err != nil {
		return "", models.User{}, err
	}
	c.token = resp.Token
	c.userID = resp.User.ID
	return resp.Token, resp.User, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
	c.token, c.userID = "", ""
	return err
}

// Me loads the signed-in user and remembers its id.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return models.User{}, err
	}
	c.userID = resp.User.ID
	return resp.User, nil
}

func (c *Client) Moods(ctx context.Context) ([]moods.Mood, error) {
	var resp struct {
		Moods []moods.Mood `json:"moods"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/moods", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Moods, nil
}

func (c *Client) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	if err := c.checkUser(userID); err != nil {
		return nil, err
	}
	var resp struct {
		Collections []models.Collection `json:"collections"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/collections", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Collections, nil
}

func (c *Client) CreateCollection(ctx context.Context, userID string, in models.CollectionInput) (models.Collection, error) {
	if err := c.checkUser(userID); err != nil {
		return models.Collection{}, err
	}
	var resp struct {
		Collection models.Collection `json:"collection"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/collections", in, &resp); err != nil {
		return models.Collection{}, err
	}
	return resp.Collection, nil
}

type entryResponse struct {
	Journal models.JournalEntry `json:"journal"`
}

func (c *Client) GetEntry(ctx context.Context, userID, id string) (models.JournalEntry, error) {
	if err := c.checkUser(userID); err != nil {
		return models.JournalEntry{}, err
	}
	var resp entryResponse
	if err := c.do(ctx, http.MethodGet, "/api/journals/"+url.PathEscape(id), nil, &resp); err != nil {
		return models.JournalEntry{}, err
	}
	return resp.Journal, nil
}

// ListEntries lists one page of entries. collectionID may be empty for all
// entries or models.UnorganizedCollectionID.
func (c *Client) ListEntries(ctx context.Context, collectionID string, limit, skip int) ([]models.JournalEntry, int64, error) {
	path := "/api/journals"
	if collectionID != "" {
		path = "/api/collections/" + url.PathEscape(collectionID) + "/entries"
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if skip > 0 {
		q.Set("skip", fmt.Sprint(skip))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Journals []models.JournalEntry `json:"journals"`
		Total    int64                 `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Journals, resp.Total, nil
}

// GetDraft returns nil without error when the user has no draft.
func (c *Client) GetDraft(ctx context.Context, userID string) (*models.Draft, error) {
	if err := c.checkUser(userID); err != nil {
		return nil, err
	}
	var resp struct {
		Draft *models.Draft `json:"draft"`
	}
	err := c.do(ctx, http.MethodGet, "/api/drafts", nil, &resp)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if resp.Draft != nil {
		resp.Draft.UserID = userID
	}
	return resp.Draft, nil
}

func (c *Client) SaveDraft(ctx context.Context, userID string, in models.DraftInput) error {
	if err := c.checkUser(userID); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/drafts", in, nil)
}

func (c *Client) CreateEntry(ctx context.Context, userID string, in models.EntryInput) (models.JournalEntry, error) {
	if err := c.checkUser(userID); err != nil {
		return models.JournalEntry{}, err
	}
	var resp entryResponse
	if err := c.do(ctx, http.MethodPost, "/api/journals", in, &resp); err != nil {
		return models.JournalEntry{}, err
	}
	return resp.Journal, nil
}

func (c *Client) UpdateEntry(ctx context.Context, userID string, in models.EntryInput) (models.JournalEntry, error) {
	if err := c.checkUser(userID); err != nil {
		return models.JournalEntry{}, err
	}
	var resp entryResponse
	if err := c.do(ctx, http.MethodPut, "/api/journals/"+url.PathEscape(in.ID), in, &resp); err != nil {
		return models.JournalEntry{}, err
	}
	return resp.Journal, nil
}
