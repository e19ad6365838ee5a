package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/models"
)

type PostgresAccountRepository struct {
	tx *sql.Tx
}

const accountColumns = `id, user_id, balance, currency, is_closed, opened_at, closed_at`

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanAccount(r.tx.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate loads the account with a row-level lock held until
// the unit of work finishes.
func (r *PostgresAccountRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`
	return r.scanAccount(r.tx.QueryRowContext(ctx, query, id))
}

func (r *PostgresAccountRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	var closedAt sql.NullTime

	err := row.Scan(&account.ID, &account.UserID, &account.Balance, &account.Currency,
		&account.IsClosed, &account.OpenedAt, &closedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if closedAt.Valid {
		account.ClosedAt = &closedAt.Time
	}
	return account, nil
}

func (r *PostgresAccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `INSERT INTO accounts (id, user_id, balance, currency, is_closed, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.tx.ExecContext(ctx, query, account.ID, account.UserID, account.Balance,
		account.Currency, account.IsClosed, account.OpenedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `UPDATE accounts SET balance = $1, is_closed = $2, closed_at = $3 WHERE id = $4`

	var closedAt sql.NullTime
	if account.ClosedAt != nil {
		closedAt = sql.NullTime{Time: *account.ClosedAt, Valid: true}
	}

	result, err := r.tx.ExecContext(ctx, query, account.Balance, account.IsClosed, closedAt, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating account: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

func (r *PostgresAccountRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE user_id = $1)`

	var exists bool
	if err := r.tx.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check accounts for user: %w", err)
	}
	return exists, nil
}
