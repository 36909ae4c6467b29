// Package dailysession records the per-date opening snapshot of the books.
package dailysession

import (
	"context"
	"errors"
	"fmt"

	"kahera/internal/models"
	"kahera/internal/repositories"

	"github.com/shopspring/decimal"
)

var ErrInvalidStartingCash = errors.New("starting cash must not be negative")

// Service manages one DailySession per calendar date. It reads balances
// from the ledger but never mutates them.
type Service interface {
	// StartFresh creates or resets the session for date with both starting
	// balances forced to zero, regardless of actual wallet balances.
	StartFresh(ctx context.Context, date string) (*models.DailySession, error)
	// ContinuePrevious creates the session for date from the current cash
	// balance and the sum of all gcash balances. Idempotent: an existing
	// session wins and is returned unchanged.
	ContinuePrevious(ctx context.Context, date string) (*models.DailySession, error)
	// ResetWithAmount creates or overwrites the session with the supplied
	// starting cash and the sum of active gcash balances.
	ResetWithAmount(ctx context.Context, date string, startingCash decimal.Decimal, notes string) (*models.DailySession, error)
	GetByDate(ctx context.Context, date string) (*models.DailySession, error)
}

type service struct {
	sessions repositories.SessionRepository
	ledger   repositories.LedgerRepository
}

func NewService(sessions repositories.SessionRepository, ledger repositories.LedgerRepository) Service {
	if sessions == nil {
		panic("session repository is required")
	}
	if ledger == nil {
		panic("ledger repository is required")
	}
	return &service{sessions: sessions, ledger: ledger}
}

func (s *service) StartFresh(_ context.Context, date string) (*models.DailySession, error) {
	return s.sessions.Upsert(&models.DailySession{
		Date:          date,
		StartingCash:  decimal.Zero,
		StartingGcash: decimal.Zero,
		Notes:         "Started fresh new day",
	})
}

func (s *service) ContinuePrevious(_ context.Context, date string) (*models.DailySession, error) {
	wallet, err := s.ledger.GetCashWallet()
	if err != nil {
		return nil, fmt.Errorf("failed to read cash wallet: %w", err)
	}
	// All accounts count here, inactive ones included; the snapshot should
	// match what is actually in the books being carried over.
	totalGcash, err := s.ledger.SumAllGcashBalances()
	if err != nil {
		return nil, fmt.Errorf("failed to sum gcash balances: %w", err)
	}

	return s.sessions.GetOrCreate(date, &models.DailySession{
		StartingCash:  wallet.Balance,
		StartingGcash: totalGcash,
		Notes:         "Continued previous day",
	})
}

func (s *service) ResetWithAmount(_ context.Context, date string, startingCash decimal.Decimal, notes string) (*models.DailySession, error) {
	if startingCash.IsNegative() {
		return nil, ErrInvalidStartingCash
	}
	totalGcash, err := s.ledger.SumActiveGcashBalances()
	if err != nil {
		return nil, fmt.Errorf("failed to sum gcash balances: %w", err)
	}

	return s.sessions.Upsert(&models.DailySession{
		Date:          date,
		StartingCash:  startingCash,
		StartingGcash: totalGcash,
		Notes:         notes,
	})
}

func (s *service) GetByDate(_ context.Context, date string) (*models.DailySession, error) {
	return s.sessions.GetByDate(date)
}
