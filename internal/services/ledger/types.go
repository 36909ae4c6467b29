package ledger

import "github.com/shopspring/decimal"

// Capital-move and adjustment tokens
const (
	RefCash = "cash"

	TargetCash  = "cash"
	TargetGcash = "gcash"

	DirectionAdd    = "add"
	DirectionDeduct = "deduct"
)

// CashRequest covers cash-in and cash-out; the two operations mirror each
// other and differ only in the direction of the balance swap.
type CashRequest struct {
	GcashAccountID uint            `json:"gcash_account_id"`
	Amount         decimal.Decimal `json:"amount"`
	Discounted     bool            `json:"discounted"`
	Reference      string          `json:"reference"`
	ReceiverName   string          `json:"receiver_name"`
	Remarks        string          `json:"remarks"`
}

// MoveCapitalRequest rebalances float between two ledger accounts. From
// and To are each the literal "cash" or a gcash account id.
type MoveCapitalRequest struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Remarks   string          `json:"remarks"`
}

// AdjustRequest corrects a single balance with no offsetting movement,
// representing found or lost cash.
type AdjustRequest struct {
	Target         string          `json:"target"`
	Direction      string          `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	GcashAccountID *uint           `json:"gcash_account_id"`
	Remarks        string          `json:"remarks"`
}
