package commands

import (
	"context"
	"errors"

	"deliverybot/internal/core/domain/model/session"
	"deliverybot/internal/core/domain/services"
	"deliverybot/internal/pkg/errs"
)

// ProcessMessageCommandHandler runs one inbound message through the
// conversation flow inside a transaction: load or create the chat's session,
// advance it, persist the outcome.
//
// Example:
//
//	handler := NewProcessMessageCommandHandler(uowFactory, flow)
//	cmd, _ := NewProcessMessageCommand(chatID, update.Message.Text)
//
//	result, err := handler.Handle(ctx, cmd, sendInterimReply)
//	if err != nil {
//	    return fmt.Errorf("message processing failed: %w", err)
//	}
//	// send result.Replies back to the chat
type ProcessMessageCommandHandler struct {
	uowFactory SessionUoWFactory
	flow       *services.CalculationFlow
}

// NewProcessMessageCommandHandler creates a handler around a unit of work
// factory and the conversation flow service.
func NewProcessMessageCommandHandler(uowFactory SessionUoWFactory, flow *services.CalculationFlow) ProcessMessageCommandHandler {
	return ProcessMessageCommandHandler{
		uowFactory: uowFactory,
		flow:       flow,
	}
}

// Handle processes the message command and returns the replies to send.
// Interim replies of slow steps go out through progress while the command is
// still running; a nil progress buffers them into the result.
//
// A chat without a live session gets a fresh one starting at the weight
// step. A conversation that finishes with a quote has its session removed,
// so the next message starts over.
func (h *ProcessMessageCommandHandler) Handle(ctx context.Context, cmd ProcessMessageCommand, progress services.ProgressFunc) (services.Result, error) {
	if err := cmd.Validate(); err != nil {
		return services.Result{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Result{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SessionRepository()

	sess, err := repo.Get(ctx, cmd.ChatID())
	created := false
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return services.Result{}, err
		}

		sess, err = session.NewSession(cmd.ChatID())
		if err != nil {
			return services.Result{}, err
		}
		created = true
	}

	result, err := h.flow.Process(ctx, sess, cmd.Text(), progress)
	if err != nil {
		return services.Result{}, err
	}

	switch {
	case result.Completed:
		if !created {
			if err = repo.Delete(ctx, cmd.ChatID()); err != nil {
				return services.Result{}, err
			}
		}
	case created:
		if err = repo.Add(ctx, sess); err != nil {
			return services.Result{}, err
		}
	default:
		if err = repo.Update(ctx, sess); err != nil {
			return services.Result{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Result{}, err
	}

	return result, nil
}
