package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is an ISO-style currency code.
type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

type Account struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency Currency        `json:"currency"`
	IsClosed bool            `json:"is_closed"`
	OpenedAt time.Time       `json:"opened_at"`
	ClosedAt *time.Time      `json:"closed_at,omitempty"`
}

// Transfer records a completed movement of money between two accounts.
// Amount is the sender-side debit in the sender's currency, rounded to
// two decimal places; Currency is denormalized from the sender account
// for audit purposes. Records are append-only.
type Transfer struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	TransferredAt time.Time       `json:"transferred_at"`
}

type User struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

type CreateAccountRequest struct {
	UserID         string          `json:"user_id"`
	Currency       Currency        `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type AccountResponse struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency Currency        `json:"currency"`
	IsClosed bool            `json:"is_closed"`
	OpenedAt time.Time       `json:"opened_at"`
	ClosedAt *time.Time      `json:"closed_at,omitempty"`
}

type TransferRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
}

type TransferResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	TransferredAt time.Time       `json:"transferred_at"`
}

type CommissionResponse struct {
	Commission decimal.Decimal `json:"commission"`
}

type CreateUserRequest struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

type UpdateUserRequest struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

type ConvertResponse struct {
	Amount decimal.Decimal `json:"amount"`
	From   Currency        `json:"from"`
	To     Currency        `json:"to"`
	Result decimal.Decimal `json:"result"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
