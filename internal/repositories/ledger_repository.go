package repositories

import (
	"context"
	"errors"
	"time"

	"kahera/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound     = errors.New("gcash account not found")
	ErrCashWalletNotFound  = errors.New("cash wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAccountHasHistory   = errors.New("account has transactions")
)

// TransactionFilter narrows history listings and exports.
type TransactionFilter struct {
	Type string
	// Account is a gcash account id, or the literal "cash" for rows with
	// no gcash account attached.
	Account  string
	DateFrom string
	DateTo   string
	Search   string
	Limit    int
	Offset   int
}

// DailySummary aggregates one calendar day of ledger activity.
type DailySummary struct {
	CashIn           decimal.Decimal `json:"cash_in"`
	CashOut          decimal.Decimal `json:"cash_out"`
	AdjustmentAdd    decimal.Decimal `json:"adjustment_add"`
	AdjustmentDeduct decimal.Decimal `json:"adjustment_deduct"`
	Fees             decimal.Decimal `json:"fees"`
}

// LedgerRepository owns Account and Transaction state. Balance mutations
// are only valid inside ExecuteInTransaction so each engine operation is
// all-or-nothing.
type LedgerRepository interface {
	// Accounts
	GetGcashAccount(id uint) (*models.GcashAccount, error)
	GetActiveGcashAccount(id uint) (*models.GcashAccount, error)
	ListGcashAccounts(activeOnly bool) ([]models.GcashAccount, error)
	CreateGcashAccount(account *models.GcashAccount) error
	UpdateGcashAccount(account *models.GcashAccount) error
	DeleteGcashAccount(id uint) error
	GetCashWallet() (*models.CashWallet, error)
	AddToBalance(ref interface{}, delta decimal.Decimal) error

	// Transactions
	CreateTransaction(tx *models.Transaction) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error)
	TransactionsOnDate(ctx context.Context, date string) ([]models.Transaction, error)
	CountTransactionsForAccount(accountID uint) (int64, error)

	// Aggregates
	SumActiveGcashBalances() (decimal.Decimal, error)
	SumAllGcashBalances() (decimal.Decimal, error)
	SummarizeDay(ctx context.Context, date string) (*DailySummary, error)
	// SumFeesBetween totals cash-in/cash-out fees claimed in [start, end).
	SumFeesBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// Atomic unit of work
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
