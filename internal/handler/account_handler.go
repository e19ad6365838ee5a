package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/models"
	"github.com/avoronkov/minibank/internal/service"
	u "github.com/avoronkov/minibank/internal/utils"
)

type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/accounts", h.CreateAccount).Methods(http.MethodPost)
	router.HandleFunc("/accounts/{id}", h.GetAccount).Methods(http.MethodGet)
	router.HandleFunc("/accounts/{id}/close", h.CloseAccount).Methods(http.MethodPost)
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid create account request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	account := &models.Account{
		UserID:   req.UserID,
		Currency: req.Currency,
		Balance:  req.InitialBalance,
	}

	if err := h.accountService.Create(r.Context(), account); err != nil {
		h.handleServiceError(w, err, "create account")
		return
	}

	u.WriteJSON(w, http.StatusCreated, accountResponse(account))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	account, err := h.accountService.GetByID(r.Context(), accountID)
	if err != nil {
		h.handleServiceError(w, err, "get account")
		return
	}

	u.WriteJSON(w, http.StatusOK, accountResponse(account))
}

func (h *AccountHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	if err := h.accountService.CloseByID(r.Context(), accountID); err != nil {
		h.handleServiceError(w, err, "close account")
		return
	}

	u.WriteJSON(w, http.StatusNoContent, nil)
}

func accountResponse(account *models.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:       account.ID,
		UserID:   account.UserID,
		Balance:  account.Balance,
		Currency: account.Currency,
		IsClosed: account.IsClosed,
		OpenedAt: account.OpenedAt,
		ClosedAt: account.ClosedAt,
	}
}

func (h *AccountHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case apperrors.IsNotFound(err):
		u.WriteError(w, http.StatusNotFound, "not found", err.Error())
	case apperrors.IsValidation(err):
		u.WriteError(w, http.StatusBadRequest, "validation error", err.Error())
	default:
		h.logger.Error("internal server error during "+operation, "error", err.Error())
		u.WriteError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
