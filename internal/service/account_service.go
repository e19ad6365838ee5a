package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/clock"
	"github.com/avoronkov/minibank/internal/currency"
	"github.com/avoronkov/minibank/internal/models"
	"github.com/avoronkov/minibank/internal/storage"
)

// commissionRate is the flat fee applied when sender and receiver
// accounts belong to different owners.
var commissionRate = decimal.NewFromFloat(0.02)

type AccountService interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	CloseByID(ctx context.Context, id string) error
	CalculateTransferCommission(ctx context.Context, transfer *models.Transfer) (decimal.Decimal, error)
	MakeTransfer(ctx context.Context, transfer *models.Transfer) error
	GetTransferByID(ctx context.Context, id string) (*models.Transfer, error)
}

type AccountServiceImpl struct {
	store     storage.Store
	converter currency.Converter
	clock     clock.Clock
	logger    *slog.Logger
}

func NewAccountService(store storage.Store, converter currency.Converter, clk clock.Clock, logger *slog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{
		store:     store,
		converter: converter,
		clock:     clk,
		logger:    logger,
	}
}

// Create opens a new account. The id and opening timestamp are assigned
// here; the caller only supplies owner, currency and initial balance.
func (s *AccountServiceImpl) Create(ctx context.Context, account *models.Account) error {
	if err := validateNewAccountShape(account); err != nil {
		s.logger.Warn("invalid create account request",
			"user_id", account.UserID,
			"error", err.Error(),
		)
		return err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	exists, err := uow.Users().ExistsWithID(ctx, account.UserID)
	if err != nil {
		return apperrors.NewStorageError("check user exists", err)
	}
	if !exists {
		return apperrors.NewValidationError("user_id",
			fmt.Sprintf("user with id '%s' doesn't exist", account.UserID))
	}

	account.ID = uuid.New().String()
	account.OpenedAt = s.clock.Now()
	account.IsClosed = false

	if err := uow.Accounts().Create(ctx, account); err != nil {
		return apperrors.NewStorageError("create account", err)
	}

	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	s.logger.Info("created account",
		"account_id", account.ID,
		"user_id", account.UserID,
		"currency", account.Currency,
	)
	return nil
}

func (s *AccountServiceImpl) GetByID(ctx context.Context, id string) (*models.Account, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.Accounts().GetByID(ctx, id)
}

func (s *AccountServiceImpl) GetTransferByID(ctx context.Context, id string) (*models.Transfer, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.Transfers().GetByID(ctx, id)
}

// CloseByID moves an account into its terminal closed state. Only an
// open account with an exactly zero balance may be closed.
func (s *AccountServiceImpl) CloseByID(ctx context.Context, id string) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	account, err := uow.Accounts().GetByIDForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if account.IsClosed {
		return apperrors.ErrAccountAlreadyClosed
	}
	if !account.Balance.IsZero() {
		return apperrors.ErrAccountHasFunds
	}

	now := s.clock.Now()
	account.ClosedAt = &now
	account.IsClosed = true

	if err := uow.Accounts().Update(ctx, account); err != nil {
		return apperrors.NewStorageError("update account", err)
	}

	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	s.logger.Info("closed account",
		"account_id", account.ID,
		"closed_at", now,
	)
	return nil
}

// CalculateTransferCommission previews the fee for a transfer without
// mutating anything. The preview is computed on the sender's stated
// amount; MakeTransfer deducts a fee computed on the post-conversion
// amount instead.
func (s *AccountServiceImpl) CalculateTransferCommission(ctx context.Context, transfer *models.Transfer) (decimal.Decimal, error) {
	if err := validateTransferShape(transfer); err != nil {
		return decimal.Zero, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer uow.Rollback()

	fromAccount, err := uow.Accounts().GetByID(ctx, transfer.FromAccountID)
	if err != nil {
		return decimal.Zero, err
	}
	toAccount, err := uow.Accounts().GetByID(ctx, transfer.ToAccountID)
	if err != nil {
		return decimal.Zero, err
	}

	return s.commissionBetween(transfer.Amount, fromAccount, toAccount), nil
}

func (s *AccountServiceImpl) commissionBetween(amount decimal.Decimal, fromAccount, toAccount *models.Account) decimal.Decimal {
	commission := decimal.Zero
	if fromAccount.UserID != toAccount.UserID {
		commission = amount.Mul(commissionRate).Round(2)
	}

	s.logger.Info("calculated commission",
		"amount", amount.String(),
		"from_account_id", fromAccount.ID,
		"to_account_id", toAccount.ID,
		"commission", commission.String(),
	)
	return commission
}

// MakeTransfer debits the sender, credits the receiver (converting
// between currencies and deducting the cross-owner commission from the
// converted amount) and appends the transfer record, all in one unit of
// work. Any failure before commit leaves storage unmodified.
func (s *AccountServiceImpl) MakeTransfer(ctx context.Context, transfer *models.Transfer) error {
	if err := validateTransferShape(transfer); err != nil {
		s.logger.Warn("invalid transfer request",
			"from_account_id", transfer.FromAccountID,
			"to_account_id", transfer.ToAccountID,
			"error", err.Error(),
		)
		return err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	fromAccount, err := uow.Accounts().GetByIDForUpdate(ctx, transfer.FromAccountID)
	if err != nil {
		return fmt.Errorf("sender account '%s': %w", transfer.FromAccountID, err)
	}
	// A transfer to the same account is a zero-sum movement; aliasing
	// keeps the debit and the credit on one loaded row.
	toAccount := fromAccount
	if transfer.ToAccountID != transfer.FromAccountID {
		toAccount, err = uow.Accounts().GetByIDForUpdate(ctx, transfer.ToAccountID)
		if err != nil {
			return fmt.Errorf("beneficiary account '%s': %w", transfer.ToAccountID, err)
		}
	}

	if fromAccount.IsClosed {
		return apperrors.ErrSenderAccountClosed
	}
	if toAccount.IsClosed {
		return apperrors.ErrBeneficiaryAccountClosed
	}
	if fromAccount.Balance.LessThan(transfer.Amount) {
		s.logger.Warn("insufficient funds on sender account",
			"from_account_id", transfer.FromAccountID,
			"balance", fromAccount.Balance.String(),
			"amount", transfer.Amount.String(),
		)
		return apperrors.ErrInsufficientFunds
	}

	transfer.Currency = fromAccount.Currency
	transfer.Amount = transfer.Amount.Round(2)

	creditedAmount := transfer.Amount
	if fromAccount.Currency != toAccount.Currency {
		creditedAmount, err = s.converter.Convert(ctx, transfer.Amount, fromAccount.Currency, toAccount.Currency)
		if err != nil {
			return err
		}
	}

	if fromAccount.UserID != toAccount.UserID {
		commission := s.commissionBetween(creditedAmount, fromAccount, toAccount)
		creditedAmount = creditedAmount.Sub(commission)
		s.logger.Info("deducted commission", "commission", commission.String())
	}

	fromAccount.Balance = fromAccount.Balance.Sub(transfer.Amount)
	toAccount.Balance = toAccount.Balance.Add(creditedAmount)

	if err := uow.Accounts().Update(ctx, fromAccount); err != nil {
		return apperrors.NewStorageError("update sender account", err)
	}
	if err := uow.Accounts().Update(ctx, toAccount); err != nil {
		return apperrors.NewStorageError("update beneficiary account", err)
	}

	transfer.ID = uuid.New().String()
	transfer.TransferredAt = s.clock.Now()

	if err := uow.Transfers().Create(ctx, transfer); err != nil {
		return apperrors.NewStorageError("create transfer record", err)
	}

	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	s.logger.Info("completed transfer",
		"transfer_id", transfer.ID,
		"from_account_id", fromAccount.ID,
		"to_account_id", toAccount.ID,
		"amount", transfer.Amount.String(),
		"currency", transfer.Currency,
	)
	return nil
}

func validateNewAccountShape(account *models.Account) error {
	if account.Balance.IsNegative() {
		return apperrors.NewValidationError("balance", "must be greater than or equal to 0")
	}
	if account.UserID == "" {
		return apperrors.NewValidationError("user_id", "must be non-empty")
	}
	if account.Currency == "" {
		return apperrors.NewValidationError("currency", "must be non-empty")
	}
	return nil
}

func validateTransferShape(transfer *models.Transfer) error {
	if transfer.Amount.IsNegative() {
		return apperrors.NewValidationError("amount", "must be greater than or equal to 0")
	}
	if transfer.FromAccountID == "" {
		return apperrors.NewValidationError("from_account_id", "must be non-empty")
	}
	if transfer.ToAccountID == "" {
		return apperrors.NewValidationError("to_account_id", "must be non-empty")
	}
	return nil
}
