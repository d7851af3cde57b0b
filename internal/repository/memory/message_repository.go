package memory

import (
	"context"
	"sort"
	"time"

	"farewell-wall-be/internal/entity"
	"farewell-wall-be/internal/repository/contract"
	"farewell-wall-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MessageRepository is the in-memory message gateway used by service tests.
type MessageRepository struct {
	store    *cache.Cache
	sessions contract.SessionRepository
}

func NewMessageRepository(sessions contract.SessionRepository) contract.MessageRepository {
	return &MessageRepository{
		store:    cache.New(cache.NoExpiration, 0),
		sessions: sessions,
	}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	r.store.Set(message.Id.String(), &copied, cache.NoExpiration)
	return nil
}

func (r *MessageRepository) DeleteUnscoped(ctx context.Context, id uuid.UUID) error {
	r.store.Delete(id.String())
	return nil
}

func (r *MessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	messages := r.filter(specs...)
	if len(messages) == 0 {
		return nil, nil
	}
	copied := *messages[0]
	return &copied, nil
}

func (r *MessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	return r.filter(specs...), nil
}

func (r *MessageRepository) FindAllWithSession(ctx context.Context) ([]*entity.MessageWithSession, error) {
	messages := r.filter(specification.OrderBy{Field: "created_at", Desc: true})
	out := make([]*entity.MessageWithSession, 0, len(messages))
	for _, m := range messages {
		session, err := r.sessions.FindOne(ctx, specification.ByID{ID: m.SessionId})
		if err != nil || session == nil {
			continue
		}
		out = append(out, &entity.MessageWithSession{
			Message:     *m,
			SessionName: session.Name,
		})
	}
	return out, nil
}

func (r *MessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs...))), nil
}

func (r *MessageRepository) filter(specs ...specification.Specification) []*entity.Message {
	var messages []*entity.Message
	for _, item := range r.store.Items() {
		m := item.Object.(*entity.Message)
		copied := *m
		messages = append(messages, &copied)
	}

	orderDesc := false
	limit, offset := 0, 0
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			messages = keepMessages(messages, func(m *entity.Message) bool { return m.Id.String() == sp.ID })
		case specification.BySessionID:
			messages = keepMessages(messages, func(m *entity.Message) bool { return m.SessionId == sp.SessionID })
		case specification.OrderBy:
			orderDesc = sp.Desc
		case specification.Pagination:
			limit, offset = sp.Limit, sp.Offset
		}
	}

	sort.SliceStable(messages, func(i, j int) bool {
		if orderDesc {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	// The window applies after ordering, like LIMIT/OFFSET in SQL.
	if offset > 0 {
		if offset >= len(messages) {
			return nil
		}
		messages = messages[offset:]
	}
	if limit > 0 && limit < len(messages) {
		messages = messages[:limit]
	}
	return messages
}

func keepMessages(in []*entity.Message, match func(*entity.Message) bool) []*entity.Message {
	out := in[:0]
	for _, m := range in {
		if match(m) {
			out = append(out, m)
		}
	}
	return out
}
