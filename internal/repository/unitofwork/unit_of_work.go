package unitofwork

import (
	"context"

	"github.com/tevez07b9/notebooklm/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentPageRepository() contract.DocumentPageRepository
}
