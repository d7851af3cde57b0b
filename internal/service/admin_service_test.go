package service

import (
	"context"
	"testing"

	"farewell-wall-be/internal/config"
	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/pkg/apperror"
	"farewell-wall-be/internal/pkg/serverutils"
	"farewell-wall-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestAdminService() (IAdminService, ISessionService, *memory.Factory) {
	factory := memory.NewRepositoryFactory()
	sessionSvc := NewSessionService(factory, nil, nopLogger{})
	auth := serverutils.NewAuthenticator(config.AdminConfig{Password: "admin123", AuthScheme: "static"})
	return NewAdminService(factory, sessionSvc, auth, nopLogger{}), sessionSvc, factory
}

func TestAdminLogin(t *testing.T) {
	svc, _, _ := newTestAdminService()

	res, err := svc.Login(&dto.LoginRequest{Password: "admin123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "24h", res.ExpiresIn)

	_, err = svc.Login(&dto.LoginRequest{Password: "wrong"})
	assert.True(t, apperror.IsKind(err, apperror.KindAuth))
}

func TestAdminCreateSessionGeneratesId(t *testing.T) {
	svc, _, _ := newTestAdminService()
	ctx := context.Background()

	res, err := svc.CreateSession(ctx, &dto.CreateSessionRequest{Name: "Despedida"})
	assert.NoError(t, err)
	assert.Len(t, res.Id, 8)
	assert.Equal(t, "Despedida", res.Name)
	assert.True(t, res.Active)
}

func TestAdminCreateSessionConflict(t *testing.T) {
	svc, _, _ := newTestAdminService()
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, &dto.CreateSessionRequest{Name: "First", Id: "fiesta"})
	assert.NoError(t, err)

	_, err = svc.CreateSession(ctx, &dto.CreateSessionRequest{Name: "Second", Id: "fiesta"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestAdminUpdateSessionPartialMerge(t *testing.T) {
	svc, _, _ := newTestAdminService()
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, &dto.CreateSessionRequest{Name: "Original", Id: "fiesta"})
	assert.NoError(t, err)

	// Only the name changes; active stays true.
	name := "Updated"
	res, err := svc.UpdateSession(ctx, &dto.UpdateSessionRequest{SessionId: "fiesta", Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Updated", res.Name)
	assert.True(t, res.Active)

	// Only active changes; name stays.
	active := false
	res, err = svc.UpdateSession(ctx, &dto.UpdateSessionRequest{SessionId: "fiesta", Active: &active})
	assert.NoError(t, err)
	assert.Equal(t, "Updated", res.Name)
	assert.False(t, res.Active)
}

func TestAdminDeleteMessageIdempotent(t *testing.T) {
	svc, sessionSvc, factory := newTestAdminService()
	ctx := context.Background()

	_, err := sessionSvc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)
	submitted, err := sessionSvc.SubmitMessage(ctx, &dto.SubmitMessageRequest{SessionId: "martin-isi", Text: "adiós"})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteMessage(ctx, submitted.MessageId))
	// Deleting again is still a success.
	assert.NoError(t, svc.DeleteMessage(ctx, submitted.MessageId))
	// So is deleting an id that never existed.
	assert.NoError(t, svc.DeleteMessage(ctx, uuid.New()))

	count, err := factory.NewUnitOfWork(ctx).MessageRepository().Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAdminListSessionsIncludesCounts(t *testing.T) {
	svc, sessionSvc, _ := newTestAdminService()
	ctx := context.Background()

	_, err := sessionSvc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)
	_, err = svc.CreateSession(ctx, &dto.CreateSessionRequest{Name: "Empty", Id: "empty"})
	assert.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := sessionSvc.SubmitMessage(ctx, &dto.SubmitMessageRequest{SessionId: "martin-isi", Text: "hola"})
		assert.NoError(t, err)
	}

	res, err := svc.ListSessions(ctx, false)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	byId := map[string]dto.AdminSessionData{}
	for _, s := range res.Sessions {
		byId[s.Id] = s
	}
	assert.Equal(t, int64(2), byId["martin-isi"].MessageCount)
	assert.NotNil(t, byId["martin-isi"].LastMessage)
	assert.Equal(t, int64(0), byId["empty"].MessageCount)
	assert.Nil(t, byId["empty"].LastMessage)
}

func TestAdminListSessionsActiveOnly(t *testing.T) {
	svc, sessionSvc, _ := newTestAdminService()
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, &dto.CreateSessionRequest{Name: "Live", Id: "live"})
	assert.NoError(t, err)
	_, err = svc.CreateSession(ctx, &dto.CreateSessionRequest{Name: "Done", Id: "done"})
	assert.NoError(t, err)
	assert.NoError(t, sessionSvc.DeactivateSession(ctx, "done"))

	res, err := svc.ListSessions(ctx, true)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "live", res.Sessions[0].Id)

	// Without the filter the deactivated session is still listed.
	res, err = svc.ListSessions(ctx, false)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
}

func TestAdminListAllMessagesJoinsSessionName(t *testing.T) {
	svc, sessionSvc, _ := newTestAdminService()
	ctx := context.Background()

	_, err := sessionSvc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)
	_, err = sessionSvc.SubmitMessage(ctx, &dto.SubmitMessageRequest{SessionId: "martin-isi", Text: "hola", Author: "Sofía"})
	assert.NoError(t, err)

	res, err := svc.ListAllMessages(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "Martin & Isi - USA Farewell", res.Messages[0].SessionName)
	assert.Equal(t, "Sofía", res.Messages[0].Author)
}

func TestStatsServiceComposesReport(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	sessionSvc := NewSessionService(factory, nil, nopLogger{})
	statsSvc := NewStatsService(factory)
	ctx := context.Background()

	_, err := sessionSvc.EnsureSession(ctx, "martin-isi", "Martin & Isi - USA Farewell")
	assert.NoError(t, err)
	_, err = sessionSvc.SubmitMessage(ctx, &dto.SubmitMessageRequest{SessionId: "martin-isi", Text: "buen viaje amigos", Author: "Sofía", Tip: "Un cafecito"})
	assert.NoError(t, err)
	_, err = sessionSvc.SubmitMessage(ctx, &dto.SubmitMessageRequest{SessionId: "martin-isi", Text: "suerte", Author: "Sofía"})
	assert.NoError(t, err)

	res, err := statsSvc.GetStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Overview.TotalMessages)
	assert.Equal(t, 1, res.Overview.TotalSessions)
	assert.Equal(t, 1, res.Overview.ActiveSessions)
	assert.Equal(t, 4, res.TextAnalysis.TotalWords)
	assert.Equal(t, 1, res.TextAnalysis.UniqueAuthors)
	assert.Equal(t, 1, res.TipDistribution["Un cafecito"])
	assert.Equal(t, 1, res.TipDistribution["Sin propina"])
	assert.Len(t, res.TopAuthors, 1)
	assert.Equal(t, "Sofía", res.TopAuthors[0].Author)
	assert.Equal(t, 2, res.TopAuthors[0].Count)
	assert.NotNil(t, res.Timeline.FirstMessage)
	assert.False(t, res.GeneratedAt.IsZero())
}
