package memory

import (
	"context"
	"fmt"

	"farewell-wall-be/internal/repository/contract"
	"farewell-wall-be/internal/repository/unitofwork"
)

// Factory satisfies unitofwork.RepositoryFactory with shared in-memory
// repositories so service tests run without Postgres.
type Factory struct {
	sessions contract.SessionRepository
	messages contract.MessageRepository
}

func NewRepositoryFactory() *Factory {
	sessions := NewSessionRepository()
	return &Factory{
		sessions: sessions,
		messages: NewMessageRepository(sessions),
	}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{factory: f}
}

type memoryUnitOfWork struct {
	factory *Factory
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error { return nil }

func (u *memoryUnitOfWork) Commit() error { return nil }

func (u *memoryUnitOfWork) Rollback() error {
	return fmt.Errorf("in-memory unit of work cannot roll back")
}

func (u *memoryUnitOfWork) SessionRepository() contract.SessionRepository {
	return u.factory.sessions
}

func (u *memoryUnitOfWork) MessageRepository() contract.MessageRepository {
	return u.factory.messages
}
