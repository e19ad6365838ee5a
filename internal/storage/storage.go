package storage

import (
	"context"

	"github.com/avoronkov/minibank/internal/models"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByIDForUpdate(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error
	GetByID(ctx context.Context, id string) (*models.Transfer, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	ExistsWithID(ctx context.Context, id string) (bool, error)
}

// UnitOfWork scopes repository access to one storage transaction.
// SaveChanges commits exactly once; Rollback after a successful commit
// is a no-op. All reads and writes of a single service operation go
// through one unit of work, giving all-or-nothing durability.
type UnitOfWork interface {
	Accounts() AccountRepository
	Transfers() TransferRepository
	Users() UserRepository
	SaveChanges(ctx context.Context) error
	Rollback() error
}

// Store opens request-scoped units of work.
type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
