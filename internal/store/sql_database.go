package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/migrations"
)

const maxAttempts = 3

// retryBackoff is the pause before the n-th retry.
var retryBackoff = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond}

type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// withRetry runs op until it succeeds, fails with an error the classifier
// marks NonRetryable, ctx is done or maxAttempts is reached.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		if attempt == maxAttempts-1 {
			break
		}

		db.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("retrying database call")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff[min(attempt, len(retryBackoff)-1)]):
		}
	}
	return err
}
