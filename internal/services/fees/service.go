// Package fees computes the tiered service fee charged on cash-in and
// cash-out transactions.
package fees

import (
	"context"
	"errors"
	"fmt"

	"kahera/internal/models"
	"kahera/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidRate   = errors.New("fee rates must not be negative")
)

var (
	tier500  = decimal.NewFromInt(500)
	tier1000 = decimal.NewFromInt(1000)
)

// Service is the fee policy. Rates are read fresh from the settings
// singleton on every computation, so an admin rate change applies to
// subsequent transactions only.
type Service interface {
	ComputeFee(ctx context.Context, amount decimal.Decimal, discounted bool) (decimal.Decimal, error)
	GetRates(ctx context.Context) (*models.FeeSetting, error)
	UpdateRates(ctx context.Context, req UpdateRatesRequest) (*models.FeeSetting, error)
}

// UpdateRatesRequest carries the four tier rates for an admin update.
type UpdateRatesRequest struct {
	Below500Fee          decimal.Decimal `json:"below_500_fee"`
	FiveHundredTo999Fee  decimal.Decimal `json:"five_hundred_to_999_fee"`
	Per1000Fee           decimal.Decimal `json:"per_1000_fee"`
	DiscountedPer1000Fee decimal.Decimal `json:"discounted_per_1000_fee"`
}

type service struct {
	settings repositories.FeeSettingsRepository
}

func NewService(settings repositories.FeeSettingsRepository) Service {
	if settings == nil {
		panic("fee settings repository is required")
	}
	return &service{settings: settings}
}

// ComputeFee applies the tier table. Tiers are mutually exclusive and
// evaluated in order: below 500 and 500-999 are flat, 1000 and up bills
// floor(amount/1000) times the per-1000 rate. The floor division means
// 1999 bills at 1x, not 2x; that matches how the store actually charges.
func (s *service) ComputeFee(_ context.Context, amount decimal.Decimal, discounted bool) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	settings, err := s.settings.Get()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load fee settings: %w", err)
	}

	switch {
	case amount.LessThan(tier500):
		return settings.Below500Fee, nil
	case amount.LessThan(tier1000):
		return settings.FiveHundredTo999Fee, nil
	default:
		rate := settings.Per1000Fee
		if discounted {
			rate = settings.DiscountedPer1000Fee
		}
		thousands := amount.Div(tier1000).Floor()
		return thousands.Mul(rate), nil
	}
}

func (s *service) GetRates(_ context.Context) (*models.FeeSetting, error) {
	return s.settings.Get()
}

func (s *service) UpdateRates(_ context.Context, req UpdateRatesRequest) (*models.FeeSetting, error) {
	for _, rate := range []decimal.Decimal{
		req.Below500Fee, req.FiveHundredTo999Fee, req.Per1000Fee, req.DiscountedPer1000Fee,
	} {
		if rate.IsNegative() {
			return nil, ErrInvalidRate
		}
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load fee settings: %w", err)
	}

	settings.Below500Fee = req.Below500Fee
	settings.FiveHundredTo999Fee = req.FiveHundredTo999Fee
	settings.Per1000Fee = req.Per1000Fee
	settings.DiscountedPer1000Fee = req.DiscountedPer1000Fee

	if err := s.settings.Update(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
