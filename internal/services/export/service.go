// Package export renders transaction data as CSV for download.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"kahera/internal/models"
	"kahera/internal/repositories"

	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04:05"

// Service streams CSV exports. Exports read committed data only; they are
// not linearized against in-flight ledger writes.
type Service interface {
	WriteTransactionsCSV(ctx context.Context, w io.Writer, filter repositories.TransactionFilter) error
	WriteDailyReportCSV(ctx context.Context, w io.Writer, date string) error
}

type service struct {
	ledger repositories.LedgerRepository
}

func NewService(ledger repositories.LedgerRepository) Service {
	if ledger == nil {
		panic("ledger repository is required")
	}
	return &service{ledger: ledger}
}

func (s *service) WriteTransactionsCSV(ctx context.Context, w io.Writer, filter repositories.TransactionFilter) error {
	txs, _, err := s.ledger.ListTransactions(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Account", "Amount", "Fee", "Remarks"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	// ListTransactions orders newest first for the UI; exports read oldest
	// first so the file replays chronologically.
	for i := len(txs) - 1; i >= 0; i-- {
		if err := cw.Write(transactionRow(&txs[i])); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *service) WriteDailyReportCSV(ctx context.Context, w io.Writer, date string) error {
	txs, err := s.ledger.TransactionsOnDate(ctx, date)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	rows := [][]string{
		{"Daily Report"},
		{"Date", date},
		{},
		{"Date", "Type", "Account", "Amount", "Fee", "Remarks"},
	}
	for i := range txs {
		rows = append(rows, transactionRow(&txs[i]))
	}

	cashIn, cashOut, fees := decimal.Zero, decimal.Zero, decimal.Zero
	for i := range txs {
		switch txs[i].Type {
		case models.TransactionTypeCashIn:
			cashIn = cashIn.Add(txs[i].Amount)
		case models.TransactionTypeCashOut:
			cashOut = cashOut.Add(txs[i].Amount)
		}
		fees = fees.Add(txs[i].Fee)
	}
	rows = append(rows,
		[]string{},
		[]string{"Summary"},
		[]string{"Cash In Total", cashIn.StringFixed(2)},
		[]string{"Cash Out Total", cashOut.StringFixed(2)},
		[]string{"Total Fees", fees.StringFixed(2)},
	)

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write daily report: %w", err)
	}
	return cw.Error()
}

func transactionRow(t *models.Transaction) []string {
	account := "Cash Wallet"
	if t.GcashAccount != nil {
		account = t.GcashAccount.Name
	}
	return []string{
		t.CreatedAt.Format(timeLayout),
		t.Type,
		account,
		t.Amount.StringFixed(2),
		t.Fee.StringFixed(2),
		t.Remarks,
	}
}
