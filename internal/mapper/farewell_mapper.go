package mapper

import (
	"time"

	"farewell-wall-be/internal/entity"
	"farewell-wall-be/internal/model"
)

type FarewellMapper struct{}

func NewFarewellMapper() *FarewellMapper {
	return &FarewellMapper{}
}

// Session Mappers

func (m *FarewellMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		Id:        s.Id,
		Name:      s.Name,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FarewellMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:        s.Id,
		Name:      s.Name,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

// Message Mappers

func (m *FarewellMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	return &entity.Message{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Author:    msg.Author,
		Text:      msg.Text,
		Tip:       msg.Tip,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *FarewellMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Author:    msg.Author,
		Text:      msg.Text,
		Tip:       msg.Tip,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *FarewellMapper) MessageRowToEntity(row *model.MessageWithSessionRow) *entity.MessageWithSession {
	if row == nil {
		return nil
	}

	return &entity.MessageWithSession{
		Message: entity.Message{
			Id:        row.Id,
			SessionId: row.SessionId,
			Author:    row.Author,
			Text:      row.Text,
			Tip:       row.Tip,
			CreatedAt: row.CreatedAt,
		},
		SessionName: row.SessionName,
	}
}
