// Package queries contains read-only operations over the session store.
// Implements the query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the
// aggregate model.
package queries

import (
	"errors"
	"time"

	"deliverybot/internal/pkg/guard"
)

var ErrGetActiveSessionsQueryIsNotConstructed = errors.New(
	"GetActiveSessionsQuery must be created via NewGetActiveSessionsQuery constructor",
)

// GetActiveSessionsQuery retrieves all live pricing conversations.
// Used by the ops facade and the periodic stats job.
type GetActiveSessionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveSessionsQuery creates a query to retrieve live conversations.
// This is a parameterless query.
func NewGetActiveSessionsQuery() GetActiveSessionsQuery {
	return GetActiveSessionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveSessionsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveSessionsQueryIsNotConstructed)
}

// GetActiveSessionsQueryResponse describes one live conversation: which
// chat, which step it is on, and what has been collected so far.
type GetActiveSessionsQueryResponse struct {
	ChatID    int64
	State     string
	WeightKg  *float64
	Tariff    string
	UpdatedAt time.Time
}
