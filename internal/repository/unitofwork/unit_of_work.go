package unitofwork

import (
	"context"

	"ai-datavault-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	ProjectRepository() contract.ProjectRepository
	UserRepository() contract.UserRepository
	ImportHistoryRepository() contract.ImportHistoryRepository
}
