package export

import (
	"bytes"
	"context"
	"encoding/csv"
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
	txs []models.Transaction
}

func (f *fakeLedger) ListTransactions(_ context.Context, _ repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	// Newest first, like the real repository.
	reversed := make([]models.Transaction, len(f.txs))
	for i := range f.txs {
		reversed[len(f.txs)-1-i] = f.txs[i]
	}
	return reversed, int64(len(f.txs)), nil
}

func (f *fakeLedger) TransactionsOnDate(_ context.Context, _ string) ([]models.Transaction, error) {
	return f.txs, nil
}

func sampleTransactions() []models.Transaction {
	day := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	main := &models.GcashAccount{ID: 1, Name: "Main"}
	return []models.Transaction{
		{
			Type:         models.TransactionTypeCashIn,
			GcashAccount: main,
			Amount:       decimal.NewFromInt(300),
			Fee:          decimal.NewFromInt(5),
			Remarks:      "morning",
			CreatedAt:    day,
		},
		{
			Type:      models.TransactionTypeAdjustment,
			Amount:    decimal.NewFromInt(-20),
			CreatedAt: day.Add(time.Hour),
		},
		{
			Type:         models.TransactionTypeCashOut,
			GcashAccount: main,
			Amount:       decimal.NewFromInt(1000),
			Fee:          decimal.NewFromInt(15),
			CreatedAt:    day.Add(2 * time.Hour),
		},
	}
}

func TestWriteTransactionsCSV(t *testing.T) {
	svc := NewService(&fakeLedger{txs: sampleTransactions()})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteTransactionsCSV(context.Background(), &buf, repositories.TransactionFilter{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Date", "Type", "Account", "Amount", "Fee", "Remarks"}, rows[0])
	// Chronological order: cash_in first.
	assert.Equal(t, "cash_in", rows[1][1])
	assert.Equal(t, "Main", rows[1][2])
	assert.Equal(t, "300.00", rows[1][3])
	// Rows without a gcash account label as the cash wallet.
	assert.Equal(t, "Cash Wallet", rows[2][2])
	assert.Equal(t, "-20.00", rows[2][3])
}

func TestWriteDailyReportCSV(t *testing.T) {
	svc := NewService(&fakeLedger{txs: sampleTransactions()})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteDailyReportCSV(context.Background(), &buf, "2026-09-01"))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Daily Report"}, rows[0])
	assert.Equal(t, []string{"Date", "2026-09-01"}, rows[1])

	last := rows[len(rows)-3:]
	assert.Equal(t, []string{"Cash In Total", "300.00"}, last[0])
	assert.Equal(t, []string{"Cash Out Total", "1000.00"}, last[1])
	assert.Equal(t, []string{"Total Fees", "20.00"}, last[2])
}
