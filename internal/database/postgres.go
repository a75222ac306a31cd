package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/AnshRaj112/reflect-backend/internal/logger"
)

var PostgresDB *sql.DB

// schema is applied in order on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username VARCHAR(20) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	// Entries live in MongoDB and point at a collection by id.
	`CREATE TABLE IF NOT EXISTS collections (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_username_lower ON users(LOWER(username))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_collections_user_name ON collections(user_id, LOWER(name))`,
	`CREATE INDEX IF NOT EXISTS idx_collections_user_id ON collections(user_id)`,
}

// ConnectPostgres opens the pool, checks it and applies the schema.
func ConnectPostgres(ctx context.Context, postgresURI string) error {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	PostgresDB = db
	logger.Info("connected to PostgreSQL", "uri", MaskURI(postgresURI))

	return InitPostgresTables(ctx, db)
}

// InitPostgresTables creates the users and collections tables.
func InitPostgresTables(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	logger.Info("PostgreSQL tables initialized", "statements", len(schema))
	return nil
}

func PingPostgres(ctx context.Context) error {
	if PostgresDB == nil {
		return nil
	}
	return PostgresDB.PingContext(ctx)
}

func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
