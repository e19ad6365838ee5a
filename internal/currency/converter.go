package currency

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/models"
)

// RateProvider returns how many units of the destination currency one
// unit of the source currency buys.
type RateProvider interface {
	GetRate(ctx context.Context, from, to models.Currency) (decimal.Decimal, error)
}

type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to models.Currency) (decimal.Decimal, error)
}

type RateConverter struct {
	provider RateProvider
	logger   *slog.Logger
}

func NewConverter(provider RateProvider, logger *slog.Logger) *RateConverter {
	return &RateConverter{
		provider: provider,
		logger:   logger,
	}
}

// Convert turns amount in the source currency into the destination
// currency at the provider's current rate, rounded to two decimal places.
func (c *RateConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to models.Currency) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, apperrors.NewValidationError("amount", "amount must be positive")
	}

	rate, err := c.provider.GetRate(ctx, from, to)
	if err != nil {
		c.logger.Error("failed to get exchange rate",
			"from", from,
			"to", to,
			"error", err.Error(),
		)
		return decimal.Zero, apperrors.NewConversionError(err)
	}

	converted := amount.Mul(rate).Round(2)

	c.logger.Info("converted amount",
		"amount", amount.String(),
		"from", from,
		"to", to,
		"result", converted.String(),
	)

	return converted, nil
}
