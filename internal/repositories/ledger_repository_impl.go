package repositories

import (
	"context"
	"fmt"
	"time"

	"kahera/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetGcashAccount(id uint) (*models.GcashAccount, error) {
	var account models.GcashAccount
	if err := r.db.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get gcash account: %w", err)
	}
	return &account, nil
}

func (r *ledgerRepository) GetActiveGcashAccount(id uint) (*models.GcashAccount, error) {
	var account models.GcashAccount
	if err := r.db.Where("is_active = ?", true).First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get gcash account: %w", err)
	}
	return &account, nil
}

func (r *ledgerRepository) ListGcashAccounts(activeOnly bool) ([]models.GcashAccount, error) {
	var accounts []models.GcashAccount
	q := r.db.Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list gcash accounts: %w", err)
	}
	return accounts, nil
}

func (r *ledgerRepository) CreateGcashAccount(account *models.GcashAccount) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create gcash account: %w", err)
	}
	return nil
}

func (r *ledgerRepository) UpdateGcashAccount(account *models.GcashAccount) error {
	if err := r.db.Save(account).Error; err != nil {
		return fmt.Errorf("failed to update gcash account: %w", err)
	}
	return nil
}

// DeleteGcashAccount refuses to delete accounts with ledger history; they
// should be deactivated instead so the audit trail keeps resolving.
func (r *ledgerRepository) DeleteGcashAccount(id uint) error {
	count, err := r.CountTransactionsForAccount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAccountHasHistory
	}
	result := r.db.Delete(&models.GcashAccount{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete gcash account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// GetCashWallet returns the singleton cash wallet, creating it with a zero
// balance on first access.
func (r *ledgerRepository) GetCashWallet() (*models.CashWallet, error) {
	var wallet models.CashWallet
	if err := r.db.FirstOrCreate(&wallet).Error; err != nil {
		return nil, fmt.Errorf("failed to get cash wallet: %w", err)
	}
	return &wallet, nil
}

// AddToBalance applies a relative balance change as a single SQL-expression
// update, so concurrent operations on the same account never lose updates.
// ref must be a *models.CashWallet or *models.GcashAccount with its ID set.
func (r *ledgerRepository) AddToBalance(ref interface{}, delta decimal.Decimal) error {
	result := r.db.Model(ref).UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *ledgerRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Preload("GcashAccount").
		Preload("FromAccount").
		Preload("ToAccount")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Account == "cash" {
		q = q.Where("gcash_account_id IS NULL")
	} else if filter.Account != "" {
		q = q.Where("gcash_account_id = ?", filter.Account)
	}
	if filter.DateFrom != "" {
		q = q.Where("created_at::date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("created_at::date <= ?", filter.DateTo)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("reference ILIKE ? OR receiver_name ILIKE ? OR remarks ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var txs []models.Transaction
	if err := q.Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, total, nil
}

func (r *ledgerRepository) TransactionsOnDate(ctx context.Context, date string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("GcashAccount").
		Where("created_at::date = ?", date).
		Order("created_at").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for %s: %w", date, err)
	}
	return txs, nil
}

func (r *ledgerRepository) CountTransactionsForAccount(accountID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).
		Where("gcash_account_id = ? OR from_account_id = ? OR to_account_id = ?", accountID, accountID, accountID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count account transactions: %w", err)
	}
	return count, nil
}

func (r *ledgerRepository) SumActiveGcashBalances() (decimal.Decimal, error) {
	return r.sumGcashBalances(true)
}

func (r *ledgerRepository) SumAllGcashBalances() (decimal.Decimal, error) {
	return r.sumGcashBalances(false)
}

func (r *ledgerRepository) sumGcashBalances(activeOnly bool) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := r.db.Model(&models.GcashAccount{}).Select("COALESCE(SUM(balance), 0)")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Scan(&total).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum gcash balances: %w", err)
	}
	return total, nil
}

// SummarizeDay splits adjustments on the sign of the stored amount; deducts
// are recorded negative, so the deduct column reports their absolute sum.
func (r *ledgerRepository) SummarizeDay(ctx context.Context, date string) (*DailySummary, error) {
	summary := &DailySummary{}
	day := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("created_at::date = ?", date).
		Session(&gorm.Session{})

	type sumQuery struct {
		dest  *decimal.Decimal
		where string
		args  []interface{}
		expr  string
	}
	queries := []sumQuery{
		{&summary.CashIn, "type = ?", []interface{}{models.TransactionTypeCashIn}, "COALESCE(SUM(amount), 0)"},
		{&summary.CashOut, "type = ?", []interface{}{models.TransactionTypeCashOut}, "COALESCE(SUM(amount), 0)"},
		{&summary.AdjustmentAdd, "type = ? AND amount > 0", []interface{}{models.TransactionTypeAdjustment}, "COALESCE(SUM(amount), 0)"},
		{&summary.AdjustmentDeduct, "type = ? AND amount < 0", []interface{}{models.TransactionTypeAdjustment}, "COALESCE(SUM(ABS(amount)), 0)"},
		{&summary.Fees, "type IN ?", []interface{}{[]string{models.TransactionTypeCashIn, models.TransactionTypeCashOut}}, "COALESCE(SUM(fee), 0)"},
	}
	for _, sq := range queries {
		if err := day.Where(sq.where, sq.args...).Select(sq.expr).Scan(sq.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to summarize %s: %w", date, err)
		}
	}
	return summary, nil
}

func (r *ledgerRepository) SumFeesBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("type IN ? AND claimed_at >= ? AND claimed_at < ?",
			[]string{models.TransactionTypeCashIn, models.TransactionTypeCashOut}, start, end).
		Select("COALESCE(SUM(fee), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum fees: %w", err)
	}
	return total, nil
}

// ExecuteInTransaction runs fn against a repository bound to a database
// transaction; any error rolls the whole unit back.
func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
