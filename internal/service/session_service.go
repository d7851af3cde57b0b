package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/entity"
	"farewell-wall-be/internal/pkg/apperror"
	"farewell-wall-be/internal/pkg/logger"
	"farewell-wall-be/internal/repository/specification"
	"farewell-wall-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	defaultAuthor = "Anónimo"
	defaultTip    = "Sin propina"

	maxAuthorLen = 50
	maxTextLen   = 500
	maxTipLen    = 50
)

type ISessionService interface {
	// EnsureSession returns the session with the given id, creating it with
	// the default name when absent. Concurrent callers never produce two
	// rows: the loser of the insert race re-reads the winner's row.
	EnsureSession(ctx context.Context, id, defaultName string) (*dto.SessionData, error)
	CreateSession(ctx context.Context, id, name string) (*dto.SessionData, error)
	GetSessionWithMessages(ctx context.Context, id string) (*dto.ShowSessionResponse, error)
	// ListMessages returns the session's messages oldest first. A limit of
	// zero means the full wall; TotalMessages always reflects the full count.
	ListMessages(ctx context.Context, sessionId string, limit, offset int) (*dto.ListMessagesResponse, error)
	SubmitMessage(ctx context.Context, req *dto.SubmitMessageRequest) (*dto.SubmitMessageResponse, error)
	// UpdateSession merges the non-nil fields into the session record.
	UpdateSession(ctx context.Context, id string, name *string, active *bool) (*dto.SessionData, error)
	SetSessionActive(ctx context.Context, id string, active bool) (*dto.SessionData, error)
	RenameSession(ctx context.Context, id, name string) (*dto.SessionData, error)
	// DeactivateSession is the only "delete" primitive for sessions; the
	// row and its messages stay in place.
	DeactivateSession(ctx context.Context, id string) error
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	log              logger.ILogger

	// Read cache for session lookups. The store stays the source of truth:
	// every session write drops the cached entry.
	sessions *cache.Cache
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		log:              log,
		sessions:         cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *sessionService) EnsureSession(ctx context.Context, id, defaultName string) (*dto.SessionData, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.fetchSession(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return sessionToData(session), nil
	}

	session = &entity.Session{
		Id:        id,
		Name:      defaultName,
		Active:    true,
		CreatedAt: time.Now(),
	}
	err = uow.SessionRepository().Create(ctx, session)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the bootstrap race; the row exists now, read it back.
		session, err = uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, apperror.NewStore(err)
		}
		if session == nil {
			return nil, apperror.NewNotFound("session not found")
		}
	} else if err != nil {
		return nil, apperror.NewStore(err)
	}

	s.sessions.Set(id, session, cache.DefaultExpiration)
	return sessionToData(session), nil
}

func (s *sessionService) CreateSession(ctx context.Context, id, name string) (*dto.SessionData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidation("name is required")
	}
	if id == "" {
		id = generateSessionId()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := &entity.Session{
		Id:        id,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
	err := uow.SessionRepository().Create(ctx, session)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperror.NewConflict("session id already exists")
	}
	if err != nil {
		return nil, apperror.NewStore(err)
	}

	s.sessions.Set(id, session, cache.DefaultExpiration)
	return sessionToData(session), nil
}

func (s *sessionService) GetSessionWithMessages(ctx context.Context, id string) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.fetchSession(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("session not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.NewStore(err)
	}

	return &dto.ShowSessionResponse{
		Id:            session.Id,
		Name:          session.Name,
		Active:        session.Active,
		CreatedAt:     session.CreatedAt,
		Messages:      messagesToData(messages),
		TotalMessages: int64(len(messages)),
	}, nil
}

func (s *sessionService) ListMessages(ctx context.Context, sessionId string, limit, offset int) (*dto.ListMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.fetchSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("session not found")
	}

	specs := []specification.Specification{
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	}
	if offset < 0 {
		offset = 0
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.NewStore(err)
	}

	total := int64(len(messages))
	if limit > 0 {
		total, err = uow.MessageRepository().Count(ctx, specification.BySessionID{SessionID: sessionId})
		if err != nil {
			return nil, apperror.NewStore(err)
		}
	}

	return &dto.ListMessagesResponse{
		SessionId:     session.Id,
		SessionName:   session.Name,
		Active:        session.Active,
		CreatedAt:     session.CreatedAt,
		Messages:      messagesToData(messages),
		TotalMessages: total,
	}, nil
}

func (s *sessionService) SubmitMessage(ctx context.Context, req *dto.SubmitMessageRequest) (*dto.SubmitMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The session must already exist; ingestion never auto-creates one.
	// The lookup comes first: an unknown session is a 404 no matter what
	// the payload looks like.
	session, err := s.fetchSession(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("session not found")
	}

	text := clipRunes(strings.TrimSpace(req.Text), maxTextLen)
	if text == "" {
		return nil, apperror.NewValidation("text is required")
	}

	msg := &entity.Message{
		Id:        uuid.New(),
		SessionId: session.Id,
		Author:    sanitizeAuthor(req.Author),
		Text:      text,
		Tip:       sanitizeTip(req.Tip),
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		return nil, apperror.NewStore(err)
	}

	// The insert already succeeded; a failed re-count must not fail the
	// request. The total is best-effort.
	total, err := uow.MessageRepository().Count(ctx, specification.BySessionID{SessionID: session.Id})
	if err != nil {
		s.log.Warn("session", "message count refresh failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		total = 0
	}

	s.publishMessageCreated(ctx, msg)

	return &dto.SubmitMessageResponse{
		MessageId:     msg.Id,
		TotalMessages: total,
		Data:          messageToData(msg),
	}, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, id string, name *string, active *bool) (*dto.SessionData, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, apperror.NewValidation("name must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.NewStore(err)
	}
	if session == nil {
		return nil, apperror.NewNotFound("session not found")
	}

	if name != nil {
		session.Name = strings.TrimSpace(*name)
	}
	if active != nil {
		session.Active = *active
	}
	now := time.Now()
	session.UpdatedAt = &now

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, apperror.NewStore(err)
	}

	s.sessions.Delete(id)
	return sessionToData(session), nil
}

func (s *sessionService) SetSessionActive(ctx context.Context, id string, active bool) (*dto.SessionData, error) {
	return s.UpdateSession(ctx, id, nil, &active)
}

func (s *sessionService) RenameSession(ctx context.Context, id, name string) (*dto.SessionData, error) {
	return s.UpdateSession(ctx, id, &name, nil)
}

func (s *sessionService) DeactivateSession(ctx context.Context, id string) error {
	_, err := s.SetSessionActive(ctx, id, false)
	return err
}

// fetchSession reads through the session cache. Absence is cached nowhere;
// only hits are stored.
func (s *sessionService) fetchSession(ctx context.Context, uow unitofwork.UnitOfWork, id string) (*entity.Session, error) {
	if cached, found := s.sessions.Get(id); found {
		return cached.(*entity.Session), nil
	}

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.NewStore(err)
	}
	if session != nil {
		s.sessions.Set(id, session, cache.DefaultExpiration)
	}
	return session, nil
}

func (s *sessionService) publishMessageCreated(ctx context.Context, msg *entity.Message) {
	if s.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.PublishMessageCreated{
		MessageId: msg.Id,
		SessionId: msg.SessionId,
		Author:    msg.Author,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		return
	}

	// Events are auxiliary; a publish failure never fails the request.
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("session", "failed to publish message.created", map[string]interface{}{
			"message_id": msg.Id,
			"error":      err.Error(),
		})
	}
}

func sanitizeAuthor(raw string) string {
	author := strings.TrimSpace(raw)
	if author == "" {
		author = defaultAuthor
	}
	return clipRunes(author, maxAuthorLen)
}

func sanitizeTip(raw string) string {
	tip := raw
	if tip == "" {
		tip = defaultTip
	}
	return clipRunes(tip, maxTipLen)
}

func clipRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func generateSessionId() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func sessionToData(s *entity.Session) *dto.SessionData {
	return &dto.SessionData{
		Id:        s.Id,
		Name:      s.Name,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func messageToData(m *entity.Message) dto.MessageData {
	return dto.MessageData{
		Id:        m.Id,
		SessionId: m.SessionId,
		Author:    m.Author,
		Text:      m.Text,
		Tip:       m.Tip,
		CreatedAt: m.CreatedAt,
	}
}

func messagesToData(messages []*entity.Message) []dto.MessageData {
	out := make([]dto.MessageData, len(messages))
	for i, m := range messages {
		out[i] = messageToData(m)
	}
	return out
}
