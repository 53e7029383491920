package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"deliverybot/internal/core/application/usecases/commands"
)

func TestResetSessionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewResetSessionCommand(1001)
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Delete", ctx, int64(1001)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResetSessionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestResetSessionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ResetSessionCommand{} // not constructed properly

	factory := new(MockSessionUoWFactory)
	handler := commands.NewResetSessionCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrResetSessionCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestResetSessionCommandHandler_Handle_DeleteError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewResetSessionCommand(1001)
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Delete", ctx, int64(1001)).Return(errors.New("delete error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResetSessionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "delete error")
	uow.AssertExpectations(t)
}
