package commands

import (
	"context"
)

// CleanupSessionsCommandHandler drops stale sessions in one transaction and
// reports how many were removed.
type CleanupSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewCleanupSessionsCommandHandler creates a handler for stale-session cleanup.
func NewCleanupSessionsCommandHandler(uowFactory SessionUoWFactory) CleanupSessionsCommandHandler {
	return CleanupSessionsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cleanup command and returns the number of sessions
// removed.
func (h *CleanupSessionsCommandHandler) Handle(ctx context.Context, cmd CleanupSessionsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.SessionRepository().DeleteStale(ctx, cmd.MaxIdle())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
