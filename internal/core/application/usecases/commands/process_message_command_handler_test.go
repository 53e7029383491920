package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"deliverybot/internal/core/application/usecases/commands"
	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/core/domain/model/session"
	"deliverybot/internal/core/domain/model/tariff"
	"deliverybot/internal/core/domain/services"
	"deliverybot/internal/core/ports"
	"deliverybot/internal/pkg/errs"
)

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, chatID int64) (*session.Session, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteStale(ctx context.Context, maxIdle time.Duration) (int64, error) {
	args := m.Called(ctx, maxIdle)
	return args.Get(0).(int64), args.Error(1)
}

type MockSessionUoW struct{ mock.Mock }

func (m *MockSessionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

// noGeocoder fails every lookup; the tests below never reach geocoding.
type noGeocoder struct{}

func (noGeocoder) Resolve(context.Context, string) (ports.ResolvedAddress, bool) {
	return ports.ResolvedAddress{}, false
}

func newFlow(t *testing.T) *services.CalculationFlow {
	t.Helper()
	origin, err := kernel.NewGeoPoint(55.683037, 37.661695)
	require.NoError(t, err)
	flow, err := services.NewCalculationFlow(noGeocoder{}, origin)
	require.NoError(t, err)
	return flow
}

func TestProcessMessageCommandHandler_Handle_NewChat(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProcessMessageCommand(1001, "230")
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, int64(1001)).Return(nil, errs.ErrObjectNotFound).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*session.Session")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewProcessMessageCommandHandler(factory, newFlow(t))
	result, err := handler.Handle(ctx, cmd, nil)

	require.NoError(t, err)
	assert.False(t, result.Completed)
	require.Len(t, result.Replies, 1)
	assert.Contains(t, result.Replies[0].Text, "Тариф присвоен")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestProcessMessageCommandHandler_Handle_ExistingSession(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProcessMessageCommand(1001, "не координаты и не да/нет")
	require.NoError(t, err)

	w, err := kernel.NewWeight(230)
	require.NoError(t, err)
	sess, err := session.RestoreSession(1001, session.AwaitingCoords, &w, tariff.CargoS, "", nil)
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, int64(1001)).Return(sess, nil).Once(),
		repo.On("Update", ctx, sess).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewProcessMessageCommandHandler(factory, newFlow(t))
	result, err := handler.Handle(ctx, cmd, nil)

	require.NoError(t, err)
	require.Len(t, result.Replies, 1)
	assert.Contains(t, result.Replies[0].Text, "Не понял координаты")
	repo.AssertExpectations(t)
}

func TestProcessMessageCommandHandler_Handle_CompletedConversation(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProcessMessageCommand(1001, "55.7558, 37.6173")
	require.NoError(t, err)

	w, err := kernel.NewWeight(230)
	require.NoError(t, err)
	sess, err := session.RestoreSession(1001, session.AwaitingAddressOrCoords, &w, tariff.CargoS, "", nil)
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, int64(1001)).Return(sess, nil).Once(),
		repo.On("Delete", ctx, int64(1001)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewProcessMessageCommandHandler(factory, newFlow(t))
	result, err := handler.Handle(ctx, cmd, nil)

	require.NoError(t, err)
	assert.True(t, result.Completed)
	require.Len(t, result.Replies, 1)
	assert.Contains(t, result.Replies[0].Text, "Расчёт выполнен")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestProcessMessageCommandHandler_Handle_ForwardsInterimReplies(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProcessMessageCommand(1001, "несуществующий адрес")
	require.NoError(t, err)

	w, err := kernel.NewWeight(230)
	require.NoError(t, err)
	sess, err := session.RestoreSession(1001, session.AwaitingAddressOrCoords, &w, tariff.CargoS, "", nil)
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, int64(1001)).Return(sess, nil).Once(),
		repo.On("Update", ctx, sess).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	var interim []string
	handler := commands.NewProcessMessageCommandHandler(factory, newFlow(t))
	result, err := handler.Handle(ctx, cmd, func(reply services.Reply) {
		interim = append(interim, reply.Text)
	})

	require.NoError(t, err)
	require.Len(t, interim, 1)
	assert.Contains(t, interim[0], "Ищу адрес")
	require.Len(t, result.Replies, 1)
	assert.Contains(t, result.Replies[0].Text, "Не удалось определить адрес")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestProcessMessageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ProcessMessageCommand{} // not constructed properly

	factory := new(MockSessionUoWFactory)
	handler := commands.NewProcessMessageCommandHandler(factory, newFlow(t))
	_, err := handler.Handle(ctx, cmd, nil)

	require.ErrorIs(t, err, commands.ErrProcessMessageCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestProcessMessageCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProcessMessageCommand(1001, "230")
	require.NoError(t, err)

	uow := new(MockSessionUoW)
	factory := new(MockSessionUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewProcessMessageCommandHandler(factory, newFlow(t))
	_, err = handler.Handle(ctx, cmd, nil)

	require.EqualError(t, err, "begin error")
}

func TestProcessMessageCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProcessMessageCommand(1001, "230")
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, int64(1001)).Return(nil, errors.New("connection lost")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewProcessMessageCommandHandler(factory, newFlow(t))
	_, err = handler.Handle(ctx, cmd, nil)

	require.EqualError(t, err, "connection lost")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
