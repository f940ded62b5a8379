package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider opens the database on first use so CLI commands that
// never touch persistence do not pay for it.
type DatabaseProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
	Close() error
	IsInitialized() bool
}
