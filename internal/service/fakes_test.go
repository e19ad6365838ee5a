package service_test

import (
	"context"
	"maps"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/models"
	"github.com/avoronkov/minibank/internal/storage"
)

// fakeStore is an in-memory storage.Store. Each unit of work stages its
// mutations on copies of the maps and only publishes them back on
// SaveChanges, mirroring the all-or-nothing commit boundary of the
// Postgres implementation.
type fakeStore struct {
	accounts  map[string]models.Account
	users     map[string]models.User
	transfers map[string]models.Transfer

	commitErr error
	commits   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:  make(map[string]models.Account),
		users:     make(map[string]models.User),
		transfers: make(map[string]models.Transfer),
	}
}

func (s *fakeStore) Begin(ctx context.Context) (storage.UnitOfWork, error) {
	return &fakeUnitOfWork{
		store:     s,
		accounts:  maps.Clone(s.accounts),
		users:     maps.Clone(s.users),
		transfers: maps.Clone(s.transfers),
	}, nil
}

type fakeUnitOfWork struct {
	store     *fakeStore
	accounts  map[string]models.Account
	users     map[string]models.User
	transfers map[string]models.Transfer
}

func (u *fakeUnitOfWork) Accounts() storage.AccountRepository   { return &fakeAccountRepo{u: u} }
func (u *fakeUnitOfWork) Transfers() storage.TransferRepository { return &fakeTransferRepo{u: u} }
func (u *fakeUnitOfWork) Users() storage.UserRepository         { return &fakeUserRepo{u: u} }

func (u *fakeUnitOfWork) SaveChanges(ctx context.Context) error {
	if u.store.commitErr != nil {
		return apperrors.NewStorageError("commit", u.store.commitErr)
	}
	u.store.accounts = u.accounts
	u.store.users = u.users
	u.store.transfers = u.transfers
	u.store.commits++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error { return nil }

type fakeAccountRepo struct {
	u *fakeUnitOfWork
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	account, ok := r.u.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &account, nil
}

func (r *fakeAccountRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	r.u.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, account *models.Account) error {
	if _, ok := r.u.accounts[account.ID]; !ok {
		return apperrors.ErrAccountNotFound
	}
	r.u.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	for _, account := range r.u.accounts {
		if account.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTransferRepo struct {
	u *fakeUnitOfWork
}

func (r *fakeTransferRepo) Create(ctx context.Context, transfer *models.Transfer) error {
	r.u.transfers[transfer.ID] = *transfer
	return nil
}

func (r *fakeTransferRepo) GetByID(ctx context.Context, id string) (*models.Transfer, error) {
	transfer, ok := r.u.transfers[id]
	if !ok {
		return nil, apperrors.ErrTransferNotFound
	}
	return &transfer, nil
}

type fakeUserRepo struct {
	u *fakeUnitOfWork
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := r.u.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.u.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.u.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.u.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.u.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.u.users, id)
	return nil
}

func (r *fakeUserRepo) ExistsWithID(ctx context.Context, id string) (bool, error) {
	_, ok := r.u.users[id]
	return ok, nil
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type fakeConverter struct {
	result decimal.Decimal
	err    error
	calls  int
}

func (c *fakeConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to models.Currency) (decimal.Decimal, error) {
	c.calls++
	if c.err != nil {
		return decimal.Zero, c.err
	}
	return c.result, nil
}
