package repayment

import (
	"time"
)

// Table: received_repayments (append-only audit of money received)
type ReceivedRepayment struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	RepaymentID string `gorm:"column:repayment_id;type:char(32);not null;uniqueIndex:ux_received_repayments_repayment_id"`
	// FK to loans.id (numeric)
	LoanID       uint64    `gorm:"column:loan_id;not null;index"`
	Amount       int64     `gorm:"column:amount;not null"`
	CurrencyCode string    `gorm:"column:currency_code;size:3;not null"`
	ReceivedAt   time.Time `gorm:"column:received_at;type:date;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ReceivedRepayment) TableName() string { return "received_repayments" }
