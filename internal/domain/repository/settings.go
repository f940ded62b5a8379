package repository

import (
	"context"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

// SettingsRepository is a small key/value store for user settings that are
// changed at runtime rather than in config.toml.
type SettingsRepository interface {
	// Get returns the setting, or nil if the key is not set.
	Get(ctx context.Context, key string) (*entity.Setting, error)

	// Set saves or updates a setting.
	Set(ctx context.Context, key, value string) error

	// Delete removes a setting. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every setting ordered by key.
	List(ctx context.Context) ([]*entity.Setting, error)
}
