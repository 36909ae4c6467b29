package ledger

import (
	"context"
	"errors"
	"testing"

	"kahera/internal/models"
	"kahera/internal/repositories"
	"kahera/internal/services/fees"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger is an in-memory LedgerRepository. ExecuteInTransaction
// snapshots state and restores it on error, mirroring a database rollback.
type fakeLedger struct {
	repositories.LedgerRepository

	wallet     models.CashWallet
	accounts   map[uint]*models.GcashAccount
	txs        []*models.Transaction
	failCreate bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		wallet:   models.CashWallet{ID: 1, Balance: decimal.Zero},
		accounts: make(map[uint]*models.GcashAccount),
	}
}

func (f *fakeLedger) addAccount(id uint, name string, balance int64, active bool) {
	f.accounts[id] = &models.GcashAccount{
		ID:       id,
		Name:     name,
		Balance:  decimal.NewFromInt(balance),
		IsActive: active,
	}
}

func (f *fakeLedger) GetGcashAccount(id uint) (*models.GcashAccount, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (f *fakeLedger) GetActiveGcashAccount(id uint) (*models.GcashAccount, error) {
	account, ok := f.accounts[id]
	if !ok || !account.IsActive {
		return nil, repositories.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (f *fakeLedger) GetCashWallet() (*models.CashWallet, error) {
	cp := f.wallet
	return &cp, nil
}

func (f *fakeLedger) AddToBalance(ref interface{}, delta decimal.Decimal) error {
	switch v := ref.(type) {
	case *models.CashWallet:
		f.wallet.Balance = f.wallet.Balance.Add(delta)
		return nil
	case *models.GcashAccount:
		account, ok := f.accounts[v.ID]
		if !ok {
			return repositories.ErrAccountNotFound
		}
		account.Balance = account.Balance.Add(delta)
		return nil
	default:
		return errors.New("unknown balance ref")
	}
}

func (f *fakeLedger) CreateTransaction(tx *models.Transaction) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	tx.ID = uint(len(f.txs) + 1)
	f.txs = append(f.txs, tx)
	return nil
}

func (f *fakeLedger) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	wallet := f.wallet
	accounts := make(map[uint]*models.GcashAccount, len(f.accounts))
	for id, account := range f.accounts {
		cp := *account
		accounts[id] = &cp
	}
	txCount := len(f.txs)

	if err := fn(f); err != nil {
		f.wallet = wallet
		f.accounts = accounts
		f.txs = f.txs[:txCount]
		return err
	}
	return nil
}

func (f *fakeLedger) totalBalance() decimal.Decimal {
	total := f.wallet.Balance
	for _, account := range f.accounts {
		total = total.Add(account.Balance)
	}
	return total
}

type stubFeeRepo struct{}

func (stubFeeRepo) Get() (*models.FeeSetting, error) {
	return &models.FeeSetting{
		Below500Fee:          decimal.NewFromInt(5),
		FiveHundredTo999Fee:  decimal.NewFromInt(10),
		Per1000Fee:           decimal.NewFromInt(15),
		DiscountedPer1000Fee: decimal.NewFromInt(10),
	}, nil
}

func (stubFeeRepo) Update(*models.FeeSetting) error { return nil }

func newTestService(repo *fakeLedger) Service {
	return NewService(repo, fees.NewService(stubFeeRepo{}), nil)
}

func eq(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got),
		"want %d, got %s %v", want, got, msgAndArgs)
}

func TestCashIn(t *testing.T) {
	repo := newFakeLedger()
	repo.wallet.Balance = decimal.NewFromInt(1000)
	repo.addAccount(1, "Main", 500, true)
	svc := newTestService(repo)

	tx, err := svc.CashIn(context.Background(), CashRequest{
		GcashAccountID: 1,
		Amount:         decimal.NewFromInt(300),
		Reference:      "REF-1",
	})
	require.NoError(t, err)

	eq(t, 200, repo.accounts[1].Balance, "gcash decremented")
	eq(t, 1300, repo.wallet.Balance, "cash wallet incremented")

	assert.Equal(t, models.TransactionTypeCashIn, tx.Type)
	assert.Equal(t, models.TransactionStatusClaimed, tx.Status)
	require.NotNil(t, tx.ClaimedAt)
	eq(t, 300, tx.Amount)
	eq(t, 5, tx.Fee, "300 falls in the below-500 tier")
	require.NotNil(t, tx.PreviousBalance)
	eq(t, 500, *tx.PreviousBalance, "snapshot taken before mutation")
	assert.NotEmpty(t, tx.TransactionID)
}

func TestCashOut_MirrorsCashIn(t *testing.T) {
	repo := newFakeLedger()
	repo.wallet.Balance = decimal.NewFromInt(1000)
	repo.addAccount(1, "Main", 500, true)
	svc := newTestService(repo)

	tx, err := svc.CashOut(context.Background(), CashRequest{
		GcashAccountID: 1,
		Amount:         decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	eq(t, 800, repo.accounts[1].Balance, "gcash incremented")
	eq(t, 700, repo.wallet.Balance, "cash wallet decremented")
	assert.Equal(t, models.TransactionTypeCashOut, tx.Type)
	eq(t, 5, tx.Fee)
}

func TestCashInAndOut_FeeSymmetry(t *testing.T) {
	ctx := context.Background()
	for _, amount := range []int64{100, 500, 999, 1000, 1999, 2500} {
		for _, discounted := range []bool{false, true} {
			repo := newFakeLedger()
			repo.addAccount(1, "Main", 100000, true)
			svc := newTestService(repo)

			in, err := svc.CashIn(ctx, CashRequest{GcashAccountID: 1, Amount: decimal.NewFromInt(amount), Discounted: discounted})
			require.NoError(t, err)
			out, err := svc.CashOut(ctx, CashRequest{GcashAccountID: 1, Amount: decimal.NewFromInt(amount), Discounted: discounted})
			require.NoError(t, err)

			assert.True(t, in.Fee.Equal(out.Fee),
				"fee mismatch for amount=%d discounted=%v: in=%s out=%s", amount, discounted, in.Fee, out.Fee)
		}
	}
}

func TestCashIn_Validation(t *testing.T) {
	repo := newFakeLedger()
	repo.addAccount(1, "Main", 500, true)
	repo.addAccount(2, "Retired", 500, false)
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CashIn(ctx, CashRequest{GcashAccountID: 1, Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CashIn(ctx, CashRequest{GcashAccountID: 99, Amount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, ErrAccountNotFound)

	// Inactive accounts do not take cash-in/cash-out traffic.
	_, err = svc.CashIn(ctx, CashRequest{GcashAccountID: 2, Amount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, ErrAccountNotFound)

	assert.Empty(t, repo.txs, "failed operations must not append transactions")
}

func TestCashIn_RollsBackOnFailure(t *testing.T) {
	repo := newFakeLedger()
	repo.wallet.Balance = decimal.NewFromInt(1000)
	repo.addAccount(1, "Main", 500, true)
	repo.failCreate = true
	svc := newTestService(repo)

	_, err := svc.CashIn(context.Background(), CashRequest{GcashAccountID: 1, Amount: decimal.NewFromInt(300)})
	require.Error(t, err)

	eq(t, 500, repo.accounts[1].Balance, "balance restored")
	eq(t, 1000, repo.wallet.Balance, "wallet restored")
	assert.Empty(t, repo.txs)
}

func TestMoveCapital_CashToAccount(t *testing.T) {
	repo := newFakeLedger()
	repo.wallet.Balance = decimal.NewFromInt(1300)
	repo.addAccount(1, "Main", 200, true)
	svc := newTestService(repo)

	tx, err := svc.MoveCapital(context.Background(), MoveCapitalRequest{
		From:   "cash",
		To:     "1",
		Amount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	eq(t, 1100, repo.wallet.Balance)
	eq(t, 400, repo.accounts[1].Balance)
	assert.Equal(t, models.TransactionTypeCapitalMove, tx.Type)
	assert.True(t, tx.Fee.IsZero(), "capital moves carry no fee")
	assert.Nil(t, tx.FromAccountID)
	require.NotNil(t, tx.ToAccountID)
	assert.Equal(t, uint(1), *tx.ToAccountID)
	require.NotNil(t, tx.PreviousBalance)
	eq(t, 200, *tx.PreviousBalance)
}

func TestMoveCapital_AccountToAccount(t *testing.T) {
	repo := newFakeLedger()
	repo.addAccount(1, "A", 700, true)
	repo.addAccount(2, "B", 100, true)
	svc := newTestService(repo)

	_, err := svc.MoveCapital(context.Background(), MoveCapitalRequest{
		From:   "1",
		To:     "2",
		Amount: decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	eq(t, 450, repo.accounts[1].Balance)
	eq(t, 350, repo.accounts[2].Balance)
}

func TestMoveCapital_UnresolvedSidesAreSkipped(t *testing.T) {
	// An id that resolves to nothing is skipped rather than rejected; the
	// transaction still records the requested ids. With both sides
	// unresolved the row has no balance effect at all.
	repo := newFakeLedger()
	repo.wallet.Balance = decimal.NewFromInt(1000)
	repo.addAccount(1, "Main", 500, true)
	svc := newTestService(repo)

	before := repo.totalBalance()
	tx, err := svc.MoveCapital(context.Background(), MoveCapitalRequest{
		From:   "98",
		To:     "99",
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.True(t, before.Equal(repo.totalBalance()), "no balance may move")
	require.NotNil(t, tx.FromAccountID)
	require.NotNil(t, tx.ToAccountID)
	assert.Equal(t, uint(98), *tx.FromAccountID)
	assert.Equal(t, uint(99), *tx.ToAccountID)
	assert.Nil(t, tx.PreviousBalance)
}

func TestConservation(t *testing.T) {
	// Across any sequence of cash-in, cash-out and capital moves, the sum
	// of all balances is invariant. Fees are recorded on the transaction
	// but never moved out of any balance.
	repo := newFakeLedger()
	repo.wallet.Balance = decimal.NewFromInt(10000)
	repo.addAccount(1, "A", 5000, true)
	repo.addAccount(2, "B", 3000, true)
	svc := newTestService(repo)
	ctx := context.Background()

	before := repo.totalBalance()

	_, err := svc.CashIn(ctx, CashRequest{GcashAccountID: 1, Amount: decimal.NewFromInt(1500)})
	require.NoError(t, err)
	_, err = svc.CashOut(ctx, CashRequest{GcashAccountID: 2, Amount: decimal.NewFromInt(800), Discounted: true})
	require.NoError(t, err)
	_, err = svc.MoveCapital(ctx, MoveCapitalRequest{From: "cash", To: "2", Amount: decimal.NewFromInt(2000)})
	require.NoError(t, err)
	_, err = svc.MoveCapital(ctx, MoveCapitalRequest{From: "1", To: "cash", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)

	assert.True(t, before.Equal(repo.totalBalance()),
		"conservation violated: before=%s after=%s", before, repo.totalBalance())
	assert.Len(t, repo.txs, 4)
}

func TestAdjust_Cash(t *testing.T) {
	repo := newFakeLedger()
	repo.wallet.Balance = decimal.NewFromInt(1000)
	svc := newTestService(repo)
	ctx := context.Background()

	add, err := svc.Adjust(ctx, AdjustRequest{
		Target:    TargetCash,
		Direction: DirectionAdd,
		Amount:    decimal.NewFromInt(50),
		Remarks:   "found cash",
	})
	require.NoError(t, err)
	eq(t, 1050, repo.wallet.Balance)
	eq(t, 50, add.Amount)

	deduct, err := svc.Adjust(ctx, AdjustRequest{
		Target:    TargetCash,
		Direction: DirectionDeduct,
		Amount:    decimal.NewFromInt(30),
		Remarks:   "shortage",
	})
	require.NoError(t, err)
	eq(t, 1020, repo.wallet.Balance)
	eq(t, -30, deduct.Amount, "deducts persist a negative amount")
	assert.Equal(t, models.TransactionTypeAdjustment, deduct.Type)
}

func TestAdjust_Gcash(t *testing.T) {
	repo := newFakeLedger()
	repo.addAccount(1, "Main", 400, true)
	svc := newTestService(repo)
	ctx := context.Background()

	accountID := uint(1)
	tx, err := svc.Adjust(ctx, AdjustRequest{
		Target:         TargetGcash,
		Direction:      DirectionDeduct,
		Amount:         decimal.NewFromInt(100),
		GcashAccountID: &accountID,
		Remarks:        "correction",
	})
	require.NoError(t, err)

	eq(t, 300, repo.accounts[1].Balance)
	require.NotNil(t, tx.PreviousBalance)
	eq(t, 400, *tx.PreviousBalance)
	require.NotNil(t, tx.GcashAccountID)
	assert.Equal(t, accountID, *tx.GcashAccountID)
}

func TestAdjust_Validation(t *testing.T) {
	repo := newFakeLedger()
	svc := newTestService(repo)
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	_, err := svc.Adjust(ctx, AdjustRequest{Target: TargetGcash, Direction: DirectionAdd, Amount: amount})
	assert.ErrorIs(t, err, ErrMissingGcashAccount)

	missing := uint(42)
	_, err = svc.Adjust(ctx, AdjustRequest{Target: TargetGcash, Direction: DirectionAdd, Amount: amount, GcashAccountID: &missing})
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = svc.Adjust(ctx, AdjustRequest{Target: "vault", Direction: DirectionAdd, Amount: amount, Remarks: "x"})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.Adjust(ctx, AdjustRequest{Target: TargetCash, Direction: "sideways", Amount: amount, Remarks: "x"})
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = svc.Adjust(ctx, AdjustRequest{Target: TargetCash, Direction: DirectionAdd, Amount: decimal.NewFromInt(-5), Remarks: "x"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Empty(t, repo.txs)
}
