package commands

import (
	"errors"

	"deliverybot/internal/pkg/errs"
	"deliverybot/internal/pkg/guard"
)

var ErrResetSessionCommandIsNotConstructed = errors.New(
	"ResetSessionCommand must be created via NewResetSessionCommand constructor",
)

// ResetSessionCommand represents a request to drop a chat's live session so
// the next message starts a fresh calculation. Issued for the /start and
// /cancel commands.
type ResetSessionCommand struct { //nolint:recvcheck //using for validation
	chatID int64

	guard guard.ConstructorGuard
}

// NewResetSessionCommand creates a command to reset one chat's conversation.
func NewResetSessionCommand(chatID int64) (ResetSessionCommand, error) {
	cmd := ResetSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if chatID == 0 {
		return ResetSessionCommand{}, errs.NewValueIsRequiredError("chatID")
	}
	cmd.chatID = chatID

	return cmd, nil
}

// Validate ensures the command was properly constructed.
func (c ResetSessionCommand) Validate() error {
	return c.guard.Validate(ErrResetSessionCommandIsNotConstructed)
}

// ChatID returns the conversation identifier.
func (c ResetSessionCommand) ChatID() int64 {
	return c.chatID
}
