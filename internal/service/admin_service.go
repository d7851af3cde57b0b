package service

import (
	"context"

	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/pkg/apperror"
	"farewell-wall-be/internal/pkg/logger"
	"farewell-wall-be/internal/pkg/serverutils"
	"farewell-wall-be/internal/repository/specification"
	"farewell-wall-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	// ListSessions returns every session newest first, optionally narrowed
	// to active ones.
	ListSessions(ctx context.Context, activeOnly bool) (*dto.ListSessionsResponse, error)
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionData, error)
	UpdateSession(ctx context.Context, req *dto.UpdateSessionRequest) (*dto.SessionData, error)
	DeactivateSession(ctx context.Context, id string) error
	// DeleteMessage hard-deletes one message. Deleting an absent id succeeds.
	DeleteMessage(ctx context.Context, id uuid.UUID) error
	ListAllMessages(ctx context.Context) (*dto.ListAllMessagesResponse, error)
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionService ISessionService
	authenticator  serverutils.Authenticator
	log            logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	sessionService ISessionService,
	authenticator serverutils.Authenticator,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		sessionService: sessionService,
		authenticator:  authenticator,
		log:            log,
	}
}

func (s *adminService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	token, expiresIn, err := s.authenticator.IssueToken(req.Password)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: expiresIn}, nil
}

func (s *adminService) ListSessions(ctx context.Context, activeOnly bool) (*dto.ListSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if activeOnly {
		specs = append(specs, specification.ActiveOnly{})
	}

	sessions, err := uow.SessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.NewStore(err)
	}

	data := make([]dto.AdminSessionData, 0, len(sessions))
	for _, session := range sessions {
		count, err := uow.MessageRepository().Count(ctx,
			specification.BySessionID{SessionID: session.Id},
		)
		if err != nil {
			return nil, apperror.NewStore(err)
		}

		item := dto.AdminSessionData{
			Id:           session.Id,
			Name:         session.Name,
			Active:       session.Active,
			CreatedAt:    session.CreatedAt,
			MessageCount: count,
		}
		if count > 0 {
			last, err := uow.MessageRepository().FindOne(ctx,
				specification.BySessionID{SessionID: session.Id},
				specification.OrderBy{Field: "created_at", Desc: true},
			)
			if err != nil {
				return nil, apperror.NewStore(err)
			}
			if last != nil {
				item.LastMessage = &last.CreatedAt
			}
		}
		data = append(data, item)
	}

	return &dto.ListSessionsResponse{Sessions: data, Total: len(data)}, nil
}

func (s *adminService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionData, error) {
	return s.sessionService.CreateSession(ctx, req.Id, req.Name)
}

func (s *adminService) UpdateSession(ctx context.Context, req *dto.UpdateSessionRequest) (*dto.SessionData, error) {
	return s.sessionService.UpdateSession(ctx, req.SessionId, req.Name, req.Active)
}

func (s *adminService) DeactivateSession(ctx context.Context, id string) error {
	return s.sessionService.DeactivateSession(ctx, id)
}

func (s *adminService) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MessageRepository().DeleteUnscoped(ctx, id); err != nil {
		return apperror.NewStore(err)
	}

	s.log.Info("admin", "message deleted", map[string]interface{}{
		"message_id": id,
	})
	return nil
}

func (s *adminService) ListAllMessages(ctx context.Context) (*dto.ListAllMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.MessageRepository().FindAllWithSession(ctx)
	if err != nil {
		return nil, apperror.NewStore(err)
	}

	data := make([]dto.AdminMessageData, 0, len(rows))
	for _, row := range rows {
		data = append(data, dto.AdminMessageData{
			Id:          row.Id,
			SessionId:   row.SessionId,
			SessionName: row.SessionName,
			Author:      row.Author,
			Text:        row.Text,
			Tip:         row.Tip,
			CreatedAt:   row.CreatedAt,
		})
	}

	return &dto.ListAllMessagesResponse{Messages: data, Total: len(data)}, nil
}
