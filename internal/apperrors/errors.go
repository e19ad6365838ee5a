package apperrors

import (
	"errors"
	"fmt"
)

// Business-rule rejections surfaced to the caller with a human-readable
// message. These are never retried automatically.
var (
	ErrAccountNotFound          = errors.New("account not found")
	ErrUserNotFound             = errors.New("user not found")
	ErrTransferNotFound         = errors.New("transfer not found")
	ErrAccountAlreadyClosed     = errors.New("account already closed")
	ErrAccountHasFunds          = errors.New("can't close an account that has money in it")
	ErrSenderAccountClosed      = errors.New("sender account is closed")
	ErrBeneficiaryAccountClosed = errors.New("beneficiary's account is closed")
	ErrInsufficientFunds        = errors.New("insufficient funds on the sender's account")
	ErrUserHasAccounts          = errors.New("the user has linked accounts")
)

// ValidationError reports a structurally invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ConversionError means the exchange-rate source failed or returned
// unusable data. It is a collaborator outage, not bad input; callers
// may choose to retry.
type ConversionError struct {
	Cause error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("currency conversion failed: %v", e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

func NewConversionError(cause error) error {
	return &ConversionError{Cause: cause}
}

// StorageError means a unit-of-work operation failed. The caller owns
// any retry policy.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during '%s': %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(op string, cause error) error {
	return &StorageError{Op: op, Cause: cause}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransferNotFound)
}

// IsValidation reports whether err is a caller-input or business-rule
// violation. Missing referenced entities count as validation failures.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	if IsNotFound(err) {
		return true
	}
	return errors.Is(err, ErrAccountAlreadyClosed) ||
		errors.Is(err, ErrAccountHasFunds) ||
		errors.Is(err, ErrSenderAccountClosed) ||
		errors.Is(err, ErrBeneficiaryAccountClosed) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrUserHasAccounts)
}

func IsConversion(err error) bool {
	var conversionErr *ConversionError
	return errors.As(err, &conversionErr)
}

func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
