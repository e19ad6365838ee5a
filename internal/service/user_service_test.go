package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/models"
	"github.com/avoronkov/minibank/internal/service"
)

func newUserService(store *fakeStore) service.UserService {
	return service.NewUserService(store, discardLogger())
}

func TestCreateUser(t *testing.T) {
	store := newFakeStore()
	svc := newUserService(store)

	user := &models.User{Login: "ivan", Email: "ivan@example.com"}
	if err := svc.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == "" {
		t.Error("expected user id to be assigned")
	}
	if _, ok := store.users[user.ID]; !ok {
		t.Error("user was not persisted")
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	store := newFakeStore()
	svc := newUserService(store)

	cases := []models.User{
		{Login: "", Email: "a@example.com"},
		{Login: "a", Email: ""},
	}
	for i := range cases {
		if err := svc.Create(context.Background(), &cases[i]); !apperrors.IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestUpdateUserRequiresID(t *testing.T) {
	store := newFakeStore()
	svc := newUserService(store)

	user := &models.User{Login: "ivan", Email: "ivan@example.com"}
	if err := svc.Update(context.Background(), user); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	store := newFakeStore()
	seedUser(store, "user-1")
	svc := newUserService(store)

	user := &models.User{ID: "user-1", Login: "renamed", Email: "renamed@example.com"}
	if err := svc.Update(context.Background(), user); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.users["user-1"].Login != "renamed" {
		t.Error("login was not updated")
	}
}

func TestDeleteUser(t *testing.T) {
	store := newFakeStore()
	seedUser(store, "user-1")
	svc := newUserService(store)

	if err := svc.DeleteByID(context.Background(), "user-1"); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if _, ok := store.users["user-1"]; ok {
		t.Error("user was not deleted")
	}
}

func TestDeleteUserWithAccounts(t *testing.T) {
	store := newFakeStore()
	seedUser(store, "user-1")
	seedAccount(store, "acc-1", "user-1", "0", models.CurrencyRUB)
	svc := newUserService(store)

	err := svc.DeleteByID(context.Background(), "user-1")
	if !errors.Is(err, apperrors.ErrUserHasAccounts) {
		t.Fatalf("expected ErrUserHasAccounts, got %v", err)
	}
	if _, ok := store.users["user-1"]; !ok {
		t.Error("user must not be deleted while accounts exist")
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newUserService(store)

	err := svc.DeleteByID(context.Background(), "ghost")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
