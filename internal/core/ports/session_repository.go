package ports

import (
	"context"
	"time"

	"deliverybot/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for conversation
// sessions. Sessions are keyed by chat identifier, one live session per chat.
type SessionRepository interface {
	// Add persists a new session aggregate to storage.
	// The session must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *session.Session) error

	// Update persists changes to an existing session aggregate.
	Update(ctx context.Context, aggregate *session.Session) error

	// Get retrieves the session for a chat.
	// Returns errs.ObjectNotFoundError when the chat has no live session.
	Get(ctx context.Context, chatID int64) (*session.Session, error)

	// Delete removes the session for a chat. Deleting a chat with no
	// session is not an error.
	Delete(ctx context.Context, chatID int64) error

	// DeleteStale removes sessions that have not been touched for longer
	// than maxIdle and reports how many were removed.
	DeleteStale(ctx context.Context, maxIdle time.Duration) (int64, error)
}
