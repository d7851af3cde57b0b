package contract

import (
	"context"

	"farewell-wall-be/internal/entity"
	"farewell-wall-be/internal/repository/specification"
)

type SessionRepository interface {
	// Create inserts a new session. A duplicate id surfaces as
	// gorm.ErrDuplicatedKey so callers can absorb bootstrap races.
	Create(ctx context.Context, session *entity.Session) error
	// Update persists the full session record.
	Update(ctx context.Context, session *entity.Session) error
	// FindOne returns nil, nil when no session matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
