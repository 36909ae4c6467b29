package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeCashIn      = "cash_in"
	TransactionTypeCashOut     = "cash_out"
	TransactionTypeCapitalMove = "capital_move"
	TransactionTypeAdjustment  = "adjustment"
)

// Transaction statuses
const (
	TransactionStatusPending = "pending"
	TransactionStatusClaimed = "claimed"
)

// Transaction is one immutable ledger event. Rows are only ever inserted;
// the audit trail depends on nothing updating or deleting them.
type Transaction struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	TransactionID  string `gorm:"uniqueIndex;size:64" json:"transaction_id"`
	Type           string `gorm:"size:20;not null;index" json:"type"`
	GcashAccountID *uint  `gorm:"index" json:"gcash_account_id"`
	FromAccountID  *uint  `json:"from_account_id"`
	ToAccountID    *uint  `json:"to_account_id"`

	// Adjustments store a signed amount (negative on deduct); every other
	// type stores a positive amount.
	Amount          decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount"`
	PreviousBalance *decimal.Decimal `gorm:"type:decimal(12,2)" json:"previous_balance"`
	Fee             decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"fee"`
	Discounted      bool             `gorm:"default:false" json:"discounted"`

	Status       string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	Reference    string     `gorm:"size:100" json:"reference"`
	ReceiverName string     `gorm:"size:100" json:"receiver_name"`
	Remarks      string     `json:"remarks"`
	ClaimedAt    *time.Time `gorm:"index" json:"claimed_at"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	GcashAccount *GcashAccount `gorm:"foreignKey:GcashAccountID" json:"gcash_account,omitempty"`
	FromAccount  *GcashAccount `gorm:"foreignKey:FromAccountID" json:"from_account,omitempty"`
	ToAccount    *GcashAccount `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
}
