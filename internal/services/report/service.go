// Package report produces the dashboard aggregates and the daily report.
package report

import (
	"context"
	"log"
	"time"

	"kahera/internal/models"
	"kahera/internal/repositories"
	"kahera/internal/repositories/cache"

	"github.com/shopspring/decimal"
)

const statsCacheKey = "kahera:dashboard:stats"

// DashboardStats is the front-page summary. Tubo is the day's fee income
// on cash-in/cash-out.
type DashboardStats struct {
	TotalGcash   decimal.Decimal `json:"total_gcash"`
	CashOnHand   decimal.Decimal `json:"cash_on_hand"`
	TotalCapital decimal.Decimal `json:"total_capital"`
	TuboToday    decimal.Decimal `json:"tubo_today"`
}

// Daily is a per-date summary joined with that date's opening session.
type Daily struct {
	Date    string                     `json:"date"`
	Summary *repositories.DailySummary `json:"summary"`
	Session *models.DailySession       `json:"session"`
}

// Service serves read-side aggregates. Results may lag in-flight ledger
// writes; the cache is invalidated after each write and expires on its own
// TTL besides.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	DailyReport(ctx context.Context, date string) (*Daily, error)
	InvalidateStats(ctx context.Context)
}

type service struct {
	ledger   repositories.LedgerRepository
	sessions repositories.SessionRepository
	cache    *cache.CacheService
}

// NewService creates a report service. cacheService may be nil, in which
// case every read hits the database.
func NewService(ledger repositories.LedgerRepository, sessions repositories.SessionRepository, cacheService *cache.CacheService) Service {
	if ledger == nil {
		panic("ledger repository is required")
	}
	if sessions == nil {
		panic("session repository is required")
	}
	return &service{ledger: ledger, sessions: sessions, cache: cacheService}
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		var cached DashboardStats
		if err := s.cache.GetJSON(ctx, statsCacheKey, &cached); err == nil {
			return &cached, nil
		} else if !cache.IsMiss(err) {
			log.Printf("dashboard cache read failed: %v", err)
		}
	}

	totalGcash, err := s.ledger.SumActiveGcashBalances()
	if err != nil {
		return nil, err
	}
	wallet, err := s.ledger.GetCashWallet()
	if err != nil {
		return nil, err
	}

	// The business day is the local calendar day, same as the report path;
	// Truncate would cut at UTC midnight instead.
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tubo, err := s.ledger.SumFeesBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalGcash:   totalGcash,
		CashOnHand:   wallet.Balance,
		TotalCapital: totalGcash.Add(wallet.Balance),
		TuboToday:    tubo,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, statsCacheKey, stats); err != nil {
			log.Printf("dashboard cache write failed: %v", err)
		}
	}
	return stats, nil
}

func (s *service) DailyReport(ctx context.Context, date string) (*Daily, error) {
	summary, err := s.ledger.SummarizeDay(ctx, date)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByDate(date)
	if err != nil && err != repositories.ErrSessionNotFound {
		return nil, err
	}

	return &Daily{Date: date, Summary: summary, Session: session}, nil
}

// InvalidateStats drops the cached dashboard after a ledger write. Best
// effort: the TTL bounds staleness if Redis is unreachable.
func (s *service) InvalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		log.Printf("dashboard cache invalidation failed: %v", err)
	}
}
