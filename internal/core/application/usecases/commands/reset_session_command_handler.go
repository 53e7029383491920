package commands

import (
	"context"
)

// ResetSessionCommandHandler drops a chat's live session. Resetting a chat
// that has no session is a no-op, matching the repository contract.
type ResetSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewResetSessionCommandHandler creates a handler for session resets.
func NewResetSessionCommandHandler(uowFactory SessionUoWFactory) ResetSessionCommandHandler {
	return ResetSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reset command.
func (h *ResetSessionCommandHandler) Handle(ctx context.Context, cmd ResetSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SessionRepository().Delete(ctx, cmd.ChatID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
