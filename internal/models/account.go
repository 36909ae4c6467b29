package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashWallet is the single physical-cash balance. Exactly one row exists;
// it is created lazily with a zero balance on first access.
type CashWallet struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GcashAccount is a named e-wallet balance. Inactive accounts are kept for
// history but excluded from cash-in/cash-out and from active-balance sums.
type GcashAccount struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"balance"`
	IsActive  bool            `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:GcashAccountID" json:"-"`
}
