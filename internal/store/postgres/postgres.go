// Package postgres stores users and collections in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/store"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports for a unique index conflict.
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

// New wraps an open connection. Tables are created by database.InitPostgresTables.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// parseID rejects ids that cannot be UUIDs before they reach the database,
// which would otherwise fail the query with a syntax error.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	return parsed, err == nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	u := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash, created_at, is_active)
		VALUES ($1, $2, $3, NOW(), TRUE)
		RETURNING created_at
	`, u.ID, username, passwordHash).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, store.ErrDuplicate
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, is_active
		FROM users WHERE id = $1
	`, uid))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, is_active
		FROM users WHERE LOWER(username) = LOWER($1)
	`, username))
}

func (s *Store) scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.IsActive)
	if err == sql.ErrNoRows {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

func (s *Store) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	uid, ok := parseID(userID)
	if !ok {
		return []models.Collection{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, COALESCE(description, ''), created_at
		FROM collections
		WHERE user_id = $1
		ORDER BY LOWER(name)
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	cols := []models.Collection{}
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (s *Store) GetCollection(ctx context.Context, userID, id string) (models.Collection, error) {
	uid, ok := parseID(userID)
	cid, ok2 := parseID(id)
	if !ok || !ok2 {
		return models.Collection{}, store.ErrNotFound
	}
	var c models.Collection
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, COALESCE(description, ''), created_at
		FROM collections
		WHERE id = $1 AND user_id = $2
	`, cid, uid).Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Collection{}, store.ErrNotFound
	}
	if err != nil {
		return models.Collection{}, fmt.Errorf("failed to load collection: %w", err)
	}
	return c, nil
}

func (s *Store) CreateCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	uid, ok := parseID(c.UserID)
	if !ok {
		return models.Collection{}, store.ErrNotFound
	}
	c.ID = uuid.New().String()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO collections (id, user_id, name, description, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NOW())
		RETURNING created_at
	`, c.ID, uid, c.Name, c.Description).Scan(&c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Collection{}, store.ErrDuplicate
		}
		return models.Collection{}, fmt.Errorf("failed to create collection: %w", err)
	}
	return c, nil
}

func (s *Store) DeleteCollection(ctx context.Context, userID, id string) error {
	uid, ok := parseID(userID)
	cid, ok2 := parseID(id)
	if !ok || !ok2 {
		return store.ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1 AND user_id = $2`, cid, uid)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
