package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/currency"
	"github.com/avoronkov/minibank/internal/models"
	u "github.com/avoronkov/minibank/internal/utils"
)

type CurrencyHandler struct {
	converter currency.Converter
	logger    *slog.Logger
}

func NewCurrencyHandler(converter currency.Converter, logger *slog.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		converter: converter,
		logger:    logger,
	}
}

func (h *CurrencyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/currencies/convert", h.Convert).Methods(http.MethodGet)
}

func (h *CurrencyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	amount, err := decimal.NewFromString(query.Get("amount"))
	if err != nil {
		u.WriteError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	from := models.Currency(query.Get("from"))
	to := models.Currency(query.Get("to"))
	if from == "" || to == "" {
		u.WriteError(w, http.StatusBadRequest, "from and to currencies are required", "")
		return
	}

	result, err := h.converter.Convert(r.Context(), amount, from, to)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			u.WriteError(w, http.StatusBadRequest, "validation error", err.Error())
		case apperrors.IsConversion(err):
			u.WriteError(w, http.StatusBadGateway, "conversion failed", "exchange rate source is unavailable")
		default:
			h.logger.Error("internal server error during conversion", "error", err.Error())
			u.WriteError(w, http.StatusInternalServerError, "internal server error", "")
		}
		return
	}

	u.WriteJSON(w, http.StatusOK, models.ConvertResponse{
		Amount: amount,
		From:   from,
		To:     to,
		Result: result,
	})
}
