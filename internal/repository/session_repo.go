package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// SessionRepository persists per-session key-value items.
type SessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger,
	}
}

// GetItem returns the value stored under (sessionID, key). The second
// return is false when no value is present.
func (r *SessionRepository) GetItem(ctx context.Context, sessionID, key string) (string, bool, error) {
	query := `SELECT value FROM session_items WHERE session_id = ? AND key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, sessionID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("Failed to get session item",
			zap.String("session_id", sessionID),
			zap.String("key", key),
			zap.Error(err))
		return "", false, fmt.Errorf("failed to get session item: %w", err)
	}

	return value, true, nil
}

// SetItem stores value under (sessionID, key), replacing any previous value.
func (r *SessionRepository) SetItem(ctx context.Context, sessionID, key, value string) error {
	query := `
		INSERT INTO session_items (session_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, sessionID, key, value); err != nil {
		r.logger.Error("Failed to set session item",
			zap.String("session_id", sessionID),
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to set session item: %w", err)
	}

	return nil
}
