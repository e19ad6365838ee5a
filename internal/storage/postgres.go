package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avoronkov/minibank/internal/apperrors"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Begin opens a SERIALIZABLE transaction. Concurrent transfers touching
// the same accounts must not race to produce a negative balance or a
// lost update; the isolation level plus FOR UPDATE row locks in the
// account repository guarantee that.
func (s *PostgresStore) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, apperrors.NewStorageError("begin", err)
	}
	return &postgresUnitOfWork{tx: tx}, nil
}

type postgresUnitOfWork struct {
	tx        *sql.Tx
	committed bool
}

func (u *postgresUnitOfWork) Accounts() AccountRepository {
	return &PostgresAccountRepository{tx: u.tx}
}

func (u *postgresUnitOfWork) Transfers() TransferRepository {
	return &PostgresTransferRepository{tx: u.tx}
}

func (u *postgresUnitOfWork) Users() UserRepository {
	return &PostgresUserRepository{tx: u.tx}
}

// SaveChanges commits the transaction. Commit is not cancellable: once
// it starts, a cancelled request context has no effect on it.
func (u *postgresUnitOfWork) SaveChanges(ctx context.Context) error {
	if err := u.tx.Commit(); err != nil {
		return apperrors.NewStorageError("commit", err)
	}
	u.committed = true
	return nil
}

func (u *postgresUnitOfWork) Rollback() error {
	if u.committed {
		return nil
	}
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewStorageError("rollback", err)
	}
	return nil
}
