package contract

import (
	"context"

	"farewell-wall-be/internal/entity"
	"farewell-wall-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// DeleteUnscoped hard-deletes one message. Deleting an absent id is not
	// an error; the operation is idempotent.
	DeleteUnscoped(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	// FindAllWithSession returns every message joined with its session's id
	// and name, newest first.
	FindAllWithSession(ctx context.Context) ([]*entity.MessageWithSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
