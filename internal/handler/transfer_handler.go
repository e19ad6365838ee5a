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

type TransferHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

func NewTransferHandler(accountService service.AccountService, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{
		accountService: accountService,
		logger:         logger,
	}
}

func (h *TransferHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transfers", h.MakeTransfer).Methods(http.MethodPost)
	router.HandleFunc("/transfers/commission", h.CalculateCommission).Methods(http.MethodPost)
	router.HandleFunc("/transfers/{id}", h.GetTransfer).Methods(http.MethodGet)
}

func (h *TransferHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := mux.Vars(r)["id"]

	transfer, err := h.accountService.GetTransferByID(r.Context(), transferID)
	if err != nil {
		h.handleServiceError(w, err, "get transfer")
		return
	}

	u.WriteJSON(w, http.StatusOK, models.TransferResponse{
		ID:            transfer.ID,
		Amount:        transfer.Amount,
		Currency:      transfer.Currency,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		TransferredAt: transfer.TransferredAt,
	})
}

func (h *TransferHandler) MakeTransfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid transfer request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	transfer := &models.Transfer{
		Amount:        req.Amount,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
	}

	if err := h.accountService.MakeTransfer(r.Context(), transfer); err != nil {
		h.handleServiceError(w, err, "make transfer")
		return
	}

	u.WriteJSON(w, http.StatusCreated, models.TransferResponse{
		ID:            transfer.ID,
		Amount:        transfer.Amount,
		Currency:      transfer.Currency,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		TransferredAt: transfer.TransferredAt,
	})
}

func (h *TransferHandler) CalculateCommission(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid commission request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	transfer := &models.Transfer{
		Amount:        req.Amount,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
	}

	commission, err := h.accountService.CalculateTransferCommission(r.Context(), transfer)
	if err != nil {
		h.handleServiceError(w, err, "calculate commission")
		return
	}

	u.WriteJSON(w, http.StatusOK, models.CommissionResponse{Commission: commission})
}

func (h *TransferHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case apperrors.IsNotFound(err):
		u.WriteError(w, http.StatusNotFound, "not found", err.Error())
	case apperrors.IsValidation(err):
		u.WriteError(w, http.StatusBadRequest, "validation error", err.Error())
	case apperrors.IsConversion(err):
		u.WriteError(w, http.StatusBadGateway, "conversion failed", "exchange rate source is unavailable")
	default:
		h.logger.Error("internal server error during "+operation, "error", err.Error())
		u.WriteError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
