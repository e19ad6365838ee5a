package currency_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/avoronkov/minibank/internal/apperrors"
	"github.com/avoronkov/minibank/internal/currency"
	"github.com/avoronkov/minibank/internal/models"
)

type stubRateProvider struct {
	rate decimal.Decimal
	err  error
}

func (p stubRateProvider) GetRate(ctx context.Context, from, to models.Currency) (decimal.Decimal, error) {
	if p.err != nil {
		return decimal.Zero, p.err
	}
	return p.rate, nil
}

func newConverter(provider currency.RateProvider) currency.Converter {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return currency.NewConverter(provider, logger)
}

func TestConvert(t *testing.T) {
	cases := []struct {
		amount string
		rate   string
		want   string
	}{
		{"100", "0.0125", "1.25"},
		{"10", "0.333333", "3.33"},
		{"1", "92.5", "92.5"},
		{"0", "92.5", "0"},
		// rounding is half away from zero at two decimals
		{"10.05", "1.5", "15.08"},
	}
	for _, tc := range cases {
		converter := newConverter(stubRateProvider{rate: decimal.RequireFromString(tc.rate)})

		got, err := converter.Convert(context.Background(), decimal.RequireFromString(tc.amount),
			models.CurrencyRUB, models.CurrencyUSD)
		if err != nil {
			t.Fatalf("Convert(%s, rate %s): %v", tc.amount, tc.rate, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("Convert(%s, rate %s) = %s, want %s", tc.amount, tc.rate, got, tc.want)
		}
	}
}

func TestConvertNegativeAmount(t *testing.T) {
	converter := newConverter(stubRateProvider{rate: decimal.NewFromInt(1)})

	_, err := converter.Convert(context.Background(), decimal.RequireFromString("-5"),
		models.CurrencyRUB, models.CurrencyUSD)
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if apperrors.IsConversion(err) {
		t.Error("a negative amount is bad input, not a provider outage")
	}
}

func TestConvertProviderFailure(t *testing.T) {
	converter := newConverter(stubRateProvider{err: errors.New("connection refused")})

	_, err := converter.Convert(context.Background(), decimal.NewFromInt(10),
		models.CurrencyRUB, models.CurrencyUSD)
	if !apperrors.IsConversion(err) {
		t.Fatalf("expected conversion error, got %v", err)
	}
	if apperrors.IsValidation(err) {
		t.Error("a provider outage must not classify as a validation failure")
	}
}
