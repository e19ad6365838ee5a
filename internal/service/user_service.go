package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/models"
	"github.com/avoronkov/minibank/internal/storage"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	DeleteByID(ctx context.Context, id string) error
}

type UserServiceImpl struct {
	store  storage.Store
	logger *slog.Logger
}

func NewUserService(store storage.Store, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		store:  store,
		logger: logger,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.Users().GetByID(ctx, id)
}

func (s *UserServiceImpl) Create(ctx context.Context, user *models.User) error {
	if err := validateNewUser(user); err != nil {
		return err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	user.ID = uuid.New().String()

	if err := uow.Users().Create(ctx, user); err != nil {
		return err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	s.logger.Info("created user", "user_id", user.ID)
	return nil
}

func (s *UserServiceImpl) Update(ctx context.Context, user *models.User) error {
	if err := validateUpdatedUser(user); err != nil {
		return err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.Users().Update(ctx, user); err != nil {
		return err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	s.logger.Info("updated user", "user_id", user.ID)
	return nil
}

// DeleteByID removes a user. A user with linked accounts cannot be
// deleted, closed or not.
func (s *UserServiceImpl) DeleteByID(ctx context.Context, id string) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	hasAccounts, err := uow.Accounts().ExistsForUser(ctx, id)
	if err != nil {
		return apperrors.NewStorageError("check accounts for user", err)
	}
	if hasAccounts {
		return apperrors.ErrUserHasAccounts
	}

	if err := uow.Users().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	s.logger.Info("deleted user", "user_id", id)
	return nil
}

func validateNewUser(user *models.User) error {
	if user.Login == "" {
		return apperrors.NewValidationError("login", "must be non-empty")
	}
	if user.Email == "" {
		return apperrors.NewValidationError("email", "must be non-empty")
	}
	return nil
}

func validateUpdatedUser(user *models.User) error {
	if user.ID == "" {
		return apperrors.NewValidationError("id", "must be non-empty")
	}
	if user.Login == "" {
		return apperrors.NewValidationError("login", "must be non-empty")
	}
	if user.Email == "" {
		return apperrors.NewValidationError("email", "must be non-empty")
	}
	return nil
}
