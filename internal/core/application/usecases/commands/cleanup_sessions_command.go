package commands

import (
	"errors"
	"fmt"
	"time"

	"deliverybot/internal/pkg/errs"
	"deliverybot/internal/pkg/guard"
)

var ErrCleanupSessionsCommandIsNotConstructed = errors.New(
	"CleanupSessionsCommand must be created via NewCleanupSessionsCommand constructor",
)

// CleanupSessionsCommand represents a request to drop sessions that have
// been idle longer than the given duration. Issued periodically by the
// cleanup job.
type CleanupSessionsCommand struct { //nolint:recvcheck //using for validation
	maxIdle time.Duration

	guard guard.ConstructorGuard
}

// NewCleanupSessionsCommand creates a command to drop sessions idle longer
// than maxIdle. The duration must be positive.
func NewCleanupSessionsCommand(maxIdle time.Duration) (CleanupSessionsCommand, error) {
	cmd := CleanupSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if maxIdle <= 0 {
		return CleanupSessionsCommand{}, errs.NewValueIsInvalidErrorWithCause("maxIdle",
			fmt.Errorf("%s is not a positive duration", maxIdle))
	}
	cmd.maxIdle = maxIdle

	return cmd, nil
}

// Validate ensures the command was properly constructed.
func (c CleanupSessionsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupSessionsCommandIsNotConstructed)
}

// MaxIdle returns the idle duration past which sessions are dropped.
func (c CleanupSessionsCommand) MaxIdle() time.Duration {
	return c.maxIdle
}
