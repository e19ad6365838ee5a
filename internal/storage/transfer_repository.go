package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/models"
)

type PostgresTransferRepository struct {
	tx *sql.Tx
}

func (r *PostgresTransferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	query := `INSERT INTO transfers (id, amount, currency, from_account_id, to_account_id, transferred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.tx.ExecContext(ctx, query, transfer.ID, transfer.Amount, transfer.Currency,
		transfer.FromAccountID, transfer.ToAccountID, transfer.TransferredAt)
	if err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}

func (r *PostgresTransferRepository) GetByID(ctx context.Context, id string) (*models.Transfer, error) {
	query := `SELECT id, amount, currency, from_account_id, to_account_id, transferred_at
		FROM transfers WHERE id = $1`

	transfer := &models.Transfer{}
	err := r.tx.QueryRowContext(ctx, query, id).
		Scan(&transfer.ID, &transfer.Amount, &transfer.Currency,
			&transfer.FromAccountID, &transfer.ToAccountID, &transfer.TransferredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTransferNotFound
		}
		return nil, fmt.Errorf("failed to get transfer by ID: %w", err)
	}
	return transfer, nil
}
