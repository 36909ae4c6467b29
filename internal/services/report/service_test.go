package report

import (
	"context"
	"testing"
	"time"

	"kahera/internal/models"
	"kahera/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	repositories.LedgerRepository
	activeGcash decimal.Decimal
	cash        decimal.Decimal
	feesToday   decimal.Decimal
	summary     repositories.DailySummary

	feeStart time.Time
	feeEnd   time.Time
}

func (f *fakeLedger) SumActiveGcashBalances() (decimal.Decimal, error) {
	return f.activeGcash, nil
}

func (f *fakeLedger) GetCashWallet() (*models.CashWallet, error) {
	return &models.CashWallet{ID: 1, Balance: f.cash}, nil
}

func (f *fakeLedger) SumFeesBetween(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	f.feeStart, f.feeEnd = start, end
	return f.feesToday, nil
}

func (f *fakeLedger) SummarizeDay(_ context.Context, _ string) (*repositories.DailySummary, error) {
	cp := f.summary
	return &cp, nil
}

type fakeSessions struct {
	repositories.SessionRepository
	session *models.DailySession
}

func (f *fakeSessions) GetByDate(_ string) (*models.DailySession, error) {
	if f.session == nil {
		return nil, repositories.ErrSessionNotFound
	}
	return f.session, nil
}

func TestDashboard(t *testing.T) {
	svc := NewService(&fakeLedger{
		activeGcash: decimal.NewFromInt(3000),
		cash:        decimal.NewFromInt(1200),
		feesToday:   decimal.NewFromInt(85),
	}, &fakeSessions{}, nil)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(3000).Equal(stats.TotalGcash))
	assert.True(t, decimal.NewFromInt(1200).Equal(stats.CashOnHand))
	assert.True(t, decimal.NewFromInt(4200).Equal(stats.TotalCapital))
	assert.True(t, decimal.NewFromInt(85).Equal(stats.TuboToday))
}

// The tubo window must cover the local calendar day, the same day the
// handlers format with time.Now, not the UTC day.
func TestDashboard_TuboWindowIsLocalDay(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewService(ledger, &fakeSessions{}, nil)

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	now := time.Now()
	wantStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	assert.True(t, ledger.feeStart.Equal(wantStart),
		"window starts at %s, want local midnight %s", ledger.feeStart, wantStart)
	assert.True(t, ledger.feeEnd.Equal(wantStart.Add(24*time.Hour)))
	assert.Equal(t, now.Format("2006-01-02"), ledger.feeStart.Format("2006-01-02"))
}

func TestDailyReport_WithoutSession(t *testing.T) {
	svc := NewService(&fakeLedger{
		summary: repositories.DailySummary{
			CashIn:  decimal.NewFromInt(500),
			CashOut: decimal.NewFromInt(200),
			Fees:    decimal.NewFromInt(15),
		},
	}, &fakeSessions{}, nil)

	daily, err := svc.DailyReport(context.Background(), "2026-09-01")
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", daily.Date)
	assert.True(t, decimal.NewFromInt(500).Equal(daily.Summary.CashIn))
	// A missing opening session is not an error; the report still renders.
	assert.Nil(t, daily.Session)
}

func TestDailyReport_WithSession(t *testing.T) {
	session := &models.DailySession{
		Date:         "2026-09-01",
		StartingCash: decimal.NewFromInt(1000),
	}
	svc := NewService(&fakeLedger{}, &fakeSessions{session: session}, nil)

	daily, err := svc.DailyReport(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.NotNil(t, daily.Session)
	assert.True(t, decimal.NewFromInt(1000).Equal(daily.Session.StartingCash))
}
