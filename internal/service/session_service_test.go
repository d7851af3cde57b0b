package service

import (
	"context"
	"strings"
	"testing"

	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/entity"
	"farewell-wall-be/internal/pkg/apperror"
	"farewell-wall-be/internal/pkg/logger"
	"farewell-wall-be/internal/repository/contract"
	"farewell-wall-be/internal/repository/memory"
	"farewell-wall-be/internal/repository/specification"
	"farewell-wall-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
)

// nopLogger keeps service tests quiet.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}

func newTestSessionService() (ISessionService, *memory.Factory) {
	factory := memory.NewRepositoryFactory()
	return NewSessionService(factory, nil, nopLogger{}), factory
}

func TestEnsureSessionCreatesThenReuses(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	first, err := svc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)
	assert.Equal(t, "martin-isi", first.Id)
	assert.Equal(t, "Martin & Isi - USA Farewell", first.Name)
	assert.True(t, first.Active)

	// Second call must not overwrite the stored name.
	second, err := svc.EnsureSession(ctx, "martin-isi", "Some Other Name")
	assert.NoError(t, err)
	assert.Equal(t, "Martin & Isi - USA Farewell", second.Name)
}

// racingSessionRepo reports a miss on the first lookup so EnsureSession goes
// down the create path and collides with a row inserted in between.
type racingSessionRepo struct {
	contract.SessionRepository
	missed bool
}

func (r *racingSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	if !r.missed {
		r.missed = true
		return nil, nil
	}
	return r.SessionRepository.FindOne(ctx, specs...)
}

type racingFactory struct {
	inner    unitofwork.RepositoryFactory
	sessions contract.SessionRepository
}

func (f *racingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &racingUnitOfWork{inner: f.inner.NewUnitOfWork(ctx), sessions: f.sessions}
}

type racingUnitOfWork struct {
	inner    unitofwork.UnitOfWork
	sessions contract.SessionRepository
}

func (u *racingUnitOfWork) Begin(ctx context.Context) error { return u.inner.Begin(ctx) }
func (u *racingUnitOfWork) Commit() error                   { return u.inner.Commit() }
func (u *racingUnitOfWork) Rollback() error                 { return u.inner.Rollback() }
func (u *racingUnitOfWork) SessionRepository() contract.SessionRepository {
	return u.sessions
}
func (u *racingUnitOfWork) MessageRepository() contract.MessageRepository {
	return u.inner.MessageRepository()
}

func TestEnsureSessionAbsorbsInsertRace(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	ctx := context.Background()

	// The winner's row is already there, but the loser's initial lookup
	// misses it.
	winner := &entity.Session{Id: "martin-isi", Name: "Winner Name", Active: true}
	assert.NoError(t, factory.NewUnitOfWork(ctx).SessionRepository().Create(ctx, winner))

	racing := &racingFactory{
		inner:    factory,
		sessions: &racingSessionRepo{SessionRepository: factory.NewUnitOfWork(ctx).SessionRepository()},
	}
	svc := NewSessionService(racing, nil, nopLogger{})

	res, err := svc.EnsureSession(ctx, "martin-isi", "Loser Name")
	assert.NoError(t, err)
	assert.Equal(t, "Winner Name", res.Name)
}

func TestSubmitMessageDefaultsAndClipping(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	_, err := svc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)

	res, err := svc.SubmitMessage(ctx, &dto.SubmitMessageRequest{
		SessionId: "martin-isi",
		Author:    "   ",
		Text:      "  ¡Buen viaje!  ",
		Tip:       "",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Anónimo", res.Data.Author)
	assert.Equal(t, "¡Buen viaje!", res.Data.Text)
	assert.Equal(t, "Sin propina", res.Data.Tip)
	assert.Equal(t, int64(1), res.TotalMessages)

	longAuthor := strings.Repeat("á", 80)
	longTip := strings.Repeat("b", 60)
	res, err = svc.SubmitMessage(ctx, &dto.SubmitMessageRequest{
		SessionId: "martin-isi",
		Author:    longAuthor,
		Text:      strings.Repeat("x", 600),
		Tip:       longTip,
	})
	assert.NoError(t, err)
	assert.Equal(t, 50, len([]rune(res.Data.Author)))
	assert.Equal(t, 500, len([]rune(res.Data.Text)))
	assert.Equal(t, 50, len([]rune(res.Data.Tip)))
	assert.Equal(t, int64(2), res.TotalMessages)
}

func TestSubmitMessageRejectsBlankText(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	_, err := svc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)

	_, err = svc.SubmitMessage(ctx, &dto.SubmitMessageRequest{
		SessionId: "martin-isi",
		Text:      "   \n\t ",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestSubmitMessageUnknownSessionBeatsBlankText(t *testing.T) {
	svc, _ := newTestSessionService()

	// The session lookup decides first: even a payload that would fail the
	// blank-text check reports the missing session.
	_, err := svc.SubmitMessage(context.Background(), &dto.SubmitMessageRequest{
		SessionId: "does-not-exist",
		Text:      "   ",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSubmitMessageUnknownSessionWritesNothing(t *testing.T) {
	svc, factory := newTestSessionService()
	ctx := context.Background()

	_, err := svc.SubmitMessage(ctx, &dto.SubmitMessageRequest{
		SessionId: "nope",
		Text:      "hello",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	count, err := factory.NewUnitOfWork(ctx).MessageRepository().Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDeactivateSessionKeepsRowAndMessages(t *testing.T) {
	svc, factory := newTestSessionService()
	ctx := context.Background()

	_, err := svc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)
	_, err = svc.SubmitMessage(ctx, &dto.SubmitMessageRequest{SessionId: "martin-isi", Text: "adiós"})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeactivateSession(ctx, "martin-isi"))

	uow := factory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: "martin-isi"})
	assert.NoError(t, err)
	assert.NotNil(t, session)
	assert.False(t, session.Active)

	count, err := uow.MessageRepository().Count(ctx, specification.BySessionID{SessionID: "martin-isi"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRenameSessionValidation(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	_, err := svc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)

	_, err = svc.RenameSession(ctx, "martin-isi", "   ")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	res, err := svc.RenameSession(ctx, "martin-isi", "  New Name  ")
	assert.NoError(t, err)
	assert.Equal(t, "New Name", res.Name)
	assert.NotNil(t, res.UpdatedAt)
}

func TestUpdateSessionNotFound(t *testing.T) {
	svc, _ := newTestSessionService()

	active := false
	_, err := svc.UpdateSession(context.Background(), "missing", nil, &active)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSessionCacheInvalidatedOnRename(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	_, err := svc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)

	// EnsureSession primed the cache; the rename must drop it so the next
	// read sees the new name.
	_, err = svc.RenameSession(ctx, "martin-isi", "Renamed")
	assert.NoError(t, err)

	res, err := svc.GetSessionWithMessages(ctx, "martin-isi")
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", res.Name)
}

func TestListMessagesOrderedOldestFirst(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	_, err := svc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.SubmitMessage(ctx, &dto.SubmitMessageRequest{SessionId: "martin-isi", Text: text})
		assert.NoError(t, err)
	}

	res, err := svc.ListMessages(ctx, "martin-isi", 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalMessages)
	assert.Equal(t, "first", res.Messages[0].Text)
	assert.Equal(t, "third", res.Messages[2].Text)
}

func TestListMessagesPagination(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	_, err := svc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)

	for _, text := range []string{"first", "second", "third", "fourth"} {
		_, err := svc.SubmitMessage(ctx, &dto.SubmitMessageRequest{SessionId: "martin-isi", Text: text})
		assert.NoError(t, err)
	}

	// A window keeps the ordering and reports the full total.
	res, err := svc.ListMessages(ctx, "martin-isi", 2, 1)
	assert.NoError(t, err)
	assert.Len(t, res.Messages, 2)
	assert.Equal(t, "second", res.Messages[0].Text)
	assert.Equal(t, "third", res.Messages[1].Text)
	assert.Equal(t, int64(4), res.TotalMessages)

	// A window past the end is empty, not an error.
	res, err = svc.ListMessages(ctx, "martin-isi", 2, 10)
	assert.NoError(t, err)
	assert.Len(t, res.Messages, 0)
	assert.Equal(t, int64(4), res.TotalMessages)
}
