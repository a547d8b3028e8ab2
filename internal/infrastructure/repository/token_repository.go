package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"zenpeople/internal/domain/entity"
	"zenpeople/internal/domain/repository"
	"zenpeople/internal/infrastructure/database"
)

type tokenRepository struct {
	db *database.Database
}

func NewTokenRepository(db *database.Database) repository.TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

func (r *tokenRepository) Get(ctx context.Context, name string) (*entity.TokenRecord, error) {
	query := `
		SELECT access_token, refresh_token, expires_at
		FROM oauth_tokens
		WHERE name = $1
	`

	var record entity.TokenRecord
	var expiresAt sql.NullTime

	err := r.db.DB.QueryRowContext(ctx, query, name).Scan(
		&record.AccessToken,
		&record.RefreshToken,
		&expiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found, return nil without error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find oauth token by name: %w", err)
	}

	if expiresAt.Valid {
		record.ExpiresAt = expiresAt.Time
	}

	return &record, nil
}

func (r *tokenRepository) Save(ctx context.Context, name string, record *entity.TokenRecord) error {
	// Upsert: Insert or update if exists (PostgreSQL syntax)
	query := `
		INSERT INTO oauth_tokens (name, access_token, refresh_token, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT(name) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.DB.ExecContext(ctx, query, name, record.AccessToken, record.RefreshToken, record.ExpiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save oauth token: %w", err)
	}

	return nil
}
