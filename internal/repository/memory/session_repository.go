package memory

import (
	"context"
	"sort"
	"time"

	"farewell-wall-be/internal/entity"
	"farewell-wall-be/internal/repository/contract"
	"farewell-wall-be/internal/repository/specification"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// SessionRepository is an in-memory implementation of the session gateway
// used by service tests. It honors the same duplicate-key contract as the
// GORM implementation so EnsureSession races can be exercised offline.
type SessionRepository struct {
	store *cache.Cache
}

func NewSessionRepository() contract.SessionRepository {
	return &SessionRepository{
		store: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	copied := *session
	if err := r.store.Add(session.Id, &copied, cache.NoExpiration); err != nil {
		return gorm.ErrDuplicatedKey
	}
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, session *entity.Session) error {
	copied := *session
	r.store.Set(session.Id, &copied, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	sessions := r.filter(specs...)
	if len(sessions) == 0 {
		return nil, nil
	}
	copied := *sessions[0]
	return &copied, nil
}

func (r *SessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	return r.filter(specs...), nil
}

func (r *SessionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs...))), nil
}

func (r *SessionRepository) filter(specs ...specification.Specification) []*entity.Session {
	var sessions []*entity.Session
	for _, item := range r.store.Items() {
		s := item.Object.(*entity.Session)
		copied := *s
		sessions = append(sessions, &copied)
	}

	orderDesc := false
	orderApplied := false
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			sessions = keepSessions(sessions, func(s *entity.Session) bool { return s.Id == sp.ID })
		case specification.ActiveOnly:
			sessions = keepSessions(sessions, func(s *entity.Session) bool { return s.Active })
		case specification.OrderBy:
			orderApplied = true
			orderDesc = sp.Desc
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if orderApplied && orderDesc {
			return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}

func keepSessions(in []*entity.Session, match func(*entity.Session) bool) []*entity.Session {
	out := in[:0]
	for _, s := range in {
		if match(s) {
			out = append(out, s)
		}
	}
	return out
}
