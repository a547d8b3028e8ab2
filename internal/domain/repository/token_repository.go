package repository

import (
	"context"

	"zenpeople/internal/domain/entity"
)

// TokenRepository persists the singleton OAuth token record for an
// integration. Purely storage: no expiry logic lives here.
type TokenRepository interface {
	// Get returns the stored record for the integration name, or nil when
	// no record exists yet.
	Get(ctx context.Context, name string) (*entity.TokenRecord, error)

	// Save creates or overwrites the record for the integration name.
	Save(ctx context.Context, name string, record *entity.TokenRecord) error
}
