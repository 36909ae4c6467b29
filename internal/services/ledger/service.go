package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"kahera/internal/models"
	"kahera/internal/repositories"
	"kahera/internal/services/fees"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is the ledger engine. Each operation runs as one database
// transaction: balances mutate, the fee is computed, and exactly one
// immutable Transaction row is appended, or nothing happens at all.
type Service interface {
	CashIn(ctx context.Context, req CashRequest) (*models.Transaction, error)
	CashOut(ctx context.Context, req CashRequest) (*models.Transaction, error)
	MoveCapital(ctx context.Context, req MoveCapitalRequest) (*models.Transaction, error)
	Adjust(ctx context.Context, req AdjustRequest) (*models.Transaction, error)
}

// Invalidator drops cached read-side aggregates after a write. Aggregates
// are allowed to lag in-flight writes, so failures here are logged, not
// returned.
type Invalidator interface {
	InvalidateStats(ctx context.Context)
}

type service struct {
	repo  repositories.LedgerRepository
	fees  fees.Service
	stats Invalidator
}

// NewService creates a new ledger service. stats may be nil.
func NewService(repo repositories.LedgerRepository, feeService fees.Service, stats Invalidator) Service {
	if repo == nil {
		panic("ledger repository is required")
	}
	if feeService == nil {
		panic("fee service is required")
	}
	return &service{repo: repo, fees: feeService, stats: stats}
}

func (s *service) CashIn(ctx context.Context, req CashRequest) (*models.Transaction, error) {
	// Cash in: the customer hands over physical cash, we send from the
	// gcash account. Gcash down, cash wallet up.
	return s.swap(ctx, models.TransactionTypeCashIn, req)
}

func (s *service) CashOut(ctx context.Context, req CashRequest) (*models.Transaction, error) {
	// Cash out: mirror of cash in. Gcash up, cash wallet down.
	return s.swap(ctx, models.TransactionTypeCashOut, req)
}

func (s *service) swap(ctx context.Context, txType string, req CashRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var created *models.Transaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		account, err := tx.GetActiveGcashAccount(req.GcashAccountID)
		if err != nil {
			if err == repositories.ErrAccountNotFound {
				return ErrAccountNotFound
			}
			return err
		}
		wallet, err := tx.GetCashWallet()
		if err != nil {
			return err
		}

		previous := account.Balance

		gcashDelta, cashDelta := req.Amount.Neg(), req.Amount
		if txType == models.TransactionTypeCashOut {
			gcashDelta, cashDelta = req.Amount, req.Amount.Neg()
		}
		if err := tx.AddToBalance(account, gcashDelta); err != nil {
			return err
		}
		if err := tx.AddToBalance(wallet, cashDelta); err != nil {
			return err
		}

		fee, err := s.fees.ComputeFee(ctx, req.Amount, req.Discounted)
		if err != nil {
			return err
		}

		now := time.Now()
		created = &models.Transaction{
			TransactionID:   uuid.NewString(),
			Type:            txType,
			GcashAccountID:  &account.ID,
			Amount:          req.Amount,
			PreviousBalance: &previous,
			Fee:             fee,
			Discounted:      req.Discounted,
			Status:          models.TransactionStatusClaimed,
			Reference:       req.Reference,
			ReceiverName:    req.ReceiverName,
			Remarks:         req.Remarks,
			ClaimedAt:       &now,
		}
		return tx.CreateTransaction(created)
	})
	if err != nil {
		return nil, s.fail(txType, err)
	}

	s.invalidate(ctx)
	return created, nil
}

// MoveCapital shifts float between the cash wallet and gcash accounts with
// no fee. A side naming a gcash account that does not exist is skipped
// rather than rejected; the transaction row still records the requested
// ids so the move stays auditable.
func (s *service) MoveCapital(ctx context.Context, req MoveCapitalRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	fromID := parseAccountID(req.From)
	toID := parseAccountID(req.To)

	var created *models.Transaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		var previous *decimal.Decimal

		apply := func(token string, id *uint, delta decimal.Decimal) error {
			if token == RefCash {
				wallet, err := tx.GetCashWallet()
				if err != nil {
					return err
				}
				return tx.AddToBalance(wallet, delta)
			}
			if id == nil {
				return nil
			}
			account, err := tx.GetGcashAccount(*id)
			if err != nil {
				if err == repositories.ErrAccountNotFound {
					return nil
				}
				return err
			}
			if previous == nil {
				b := account.Balance
				previous = &b
			}
			return tx.AddToBalance(account, delta)
		}

		if err := apply(req.From, fromID, req.Amount.Neg()); err != nil {
			return err
		}
		if err := apply(req.To, toID, req.Amount); err != nil {
			return err
		}

		now := time.Now()
		created = &models.Transaction{
			TransactionID:   uuid.NewString(),
			Type:            models.TransactionTypeCapitalMove,
			FromAccountID:   fromID,
			ToAccountID:     toID,
			Amount:          req.Amount,
			PreviousBalance: previous,
			Status:          models.TransactionStatusClaimed,
			Reference:       req.Reference,
			Remarks:         req.Remarks,
			ClaimedAt:       &now,
		}
		return tx.CreateTransaction(created)
	})
	if err != nil {
		return nil, s.fail(models.TransactionTypeCapitalMove, err)
	}

	s.invalidate(ctx)
	return created, nil
}

// Adjust changes a single balance with no offset; it intentionally breaks
// conservation, representing cash found, lost, or corrected. The stored
// amount is signed: deducts persist negative so reports can split the two
// directions without consulting a separate column.
func (s *service) Adjust(ctx context.Context, req AdjustRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if req.Target != TargetCash && req.Target != TargetGcash {
		return nil, ErrInvalidTarget
	}
	if req.Direction != DirectionAdd && req.Direction != DirectionDeduct {
		return nil, ErrInvalidDirection
	}
	if req.Target == TargetGcash && req.GcashAccountID == nil {
		return nil, ErrMissingGcashAccount
	}

	delta := req.Amount
	if req.Direction == DirectionDeduct {
		delta = delta.Neg()
	}

	var created *models.Transaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		var accountID *uint
		var previous *decimal.Decimal

		switch req.Target {
		case TargetCash:
			wallet, err := tx.GetCashWallet()
			if err != nil {
				return err
			}
			if err := tx.AddToBalance(wallet, delta); err != nil {
				return err
			}
		case TargetGcash:
			account, err := tx.GetGcashAccount(*req.GcashAccountID)
			if err != nil {
				if err == repositories.ErrAccountNotFound {
					return ErrAccountNotFound
				}
				return err
			}
			b := account.Balance
			previous = &b
			accountID = &account.ID
			if err := tx.AddToBalance(account, delta); err != nil {
				return err
			}
		}

		now := time.Now()
		created = &models.Transaction{
			TransactionID:   uuid.NewString(),
			Type:            models.TransactionTypeAdjustment,
			GcashAccountID:  accountID,
			Amount:          delta,
			PreviousBalance: previous,
			Status:          models.TransactionStatusClaimed,
			Remarks:         req.Remarks,
			ClaimedAt:       &now,
		}
		return tx.CreateTransaction(created)
	})
	if err != nil {
		return nil, s.fail(models.TransactionTypeAdjustment, err)
	}

	s.invalidate(ctx)
	return created, nil
}

// fail keeps engine sentinels intact and wraps everything else.
func (s *service) fail(op string, err error) error {
	switch err {
	case ErrInvalidAmount, ErrAccountNotFound, ErrMissingGcashAccount,
		ErrInvalidTarget, ErrInvalidDirection:
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrOperationFailed, op, err)
}

func (s *service) invalidate(ctx context.Context) {
	if s.stats != nil {
		s.stats.InvalidateStats(ctx)
	}
}

// parseAccountID resolves a from/to token to a gcash account id. Returns
// nil for "cash" and for anything non-numeric.
func parseAccountID(token string) *uint {
	if token == "" || token == RefCash {
		return nil
	}
	id, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(id)
	return &v
}
