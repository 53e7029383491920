package commands

import (
	"errors"

	"deliverybot/internal/pkg/errs"
	"deliverybot/internal/pkg/guard"
)

var ErrProcessMessageCommandIsNotConstructed = errors.New(
	"ProcessMessageCommand must be created via NewProcessMessageCommand constructor",
)

// ProcessMessageCommand represents one inbound chat message to run through
// the pricing conversation. The text may be empty; the flow treats it as
// unrecognized input and re-prompts.
type ProcessMessageCommand struct { //nolint:recvcheck //using for validation
	chatID int64
	text   string

	guard guard.ConstructorGuard
}

// NewProcessMessageCommand creates a command carrying one chat message.
// The chat identifier must be non-zero.
func NewProcessMessageCommand(chatID int64, text string) (ProcessMessageCommand, error) {
	cmd := ProcessMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setChatID(chatID); err != nil {
		return ProcessMessageCommand{}, err
	}
	cmd.text = text

	return cmd, nil
}

// Validate ensures the command was properly constructed.
func (c ProcessMessageCommand) Validate() error {
	return c.guard.Validate(ErrProcessMessageCommandIsNotConstructed)
}

// ChatID returns the conversation identifier.
func (c ProcessMessageCommand) ChatID() int64 {
	return c.chatID
}

// Text returns the inbound message text.
func (c ProcessMessageCommand) Text() string {
	return c.text
}

func (c *ProcessMessageCommand) setChatID(chatID int64) error {
	if chatID == 0 {
		return errs.NewValueIsRequiredError("chatID")
	}
	c.chatID = chatID
	return nil
}
