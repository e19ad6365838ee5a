package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/avoronkov/minibank/internal/apperrors"
)

func TestClassification(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		conversion bool
		storage    bool
	}{
		{
			name:       "field validation",
			err:        apperrors.NewValidationError("amount", "must be greater than or equal to 0"),
			validation: true,
		},
		{
			name:       "business rule",
			err:        apperrors.ErrInsufficientFunds,
			validation: true,
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("sender account 'x': %w", apperrors.ErrAccountNotFound),
			validation: true,
			notFound:   true,
		},
		{
			name:       "conversion",
			err:        apperrors.NewConversionError(errors.New("timeout")),
			conversion: true,
		},
		{
			name:    "storage",
			err:     apperrors.NewStorageError("commit", errors.New("reset")),
			storage: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := apperrors.IsValidation(tc.err); got != tc.validation {
				t.Errorf("IsValidation = %v, want %v", got, tc.validation)
			}
			if got := apperrors.IsNotFound(tc.err); got != tc.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tc.notFound)
			}
			if got := apperrors.IsConversion(tc.err); got != tc.conversion {
				t.Errorf("IsConversion = %v, want %v", got, tc.conversion)
			}
			if got := apperrors.IsStorage(tc.err); got != tc.storage {
				t.Errorf("IsStorage = %v, want %v", got, tc.storage)
			}
		})
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("reset")
	err := apperrors.NewStorageError("commit", cause)
	if !errors.Is(err, cause) {
		t.Error("StorageError must unwrap to its cause")
	}
}
