package loan

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("loan not found")
	ErrInvalidAmount    = errors.New("amount must be a positive integer")
	ErrInvalidTerms     = errors.New("terms must be a positive integer")
	ErrForbidden        = errors.New("loan does not belong to user")
	ErrCurrencyMismatch = errors.New("currency does not match loan currency")
)

type Status string

const (
	StatusDue    Status = "due"
	StatusRepaid Status = "repaid"
)

type InstallmentStatus string

const (
	InstallmentDue     InstallmentStatus = "due"
	InstallmentPartial InstallmentStatus = "partial"
	InstallmentRepaid  InstallmentStatus = "repaid"
)

// Amounts are minor currency units (cents for SGD/USD, dong for VND).
type Loan struct {
	ID                uint64    `gorm:"primaryKey;column:id"`
	LoanID            string    `gorm:"column:loan_id;size:32;not null;uniqueIndex:ux_loans_loan_id"`
	UserID            string    `gorm:"column:user_id;size:32;not null;index:idx_loans_user"`
	Amount            int64     `gorm:"column:amount;not null"`
	CurrencyCode      string    `gorm:"column:currency_code;size:3;not null"`
	Terms             int       `gorm:"column:terms;not null"`
	OutstandingAmount int64     `gorm:"column:outstanding_amount;not null"`
	ProcessedAt       time.Time `gorm:"column:processed_at;type:date;not null"`
	Status            Status    `gorm:"column:status;size:16;not null;default:'due'"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Loan) TableName() string { return "loans" }

// Table: scheduled_repayments (one row per installment)
type ScheduledRepayment struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// FK to loans.id (numeric)
	LoanID            uint64            `gorm:"column:loan_id;not null;index:idx_scheduled_loan_due,priority:1"`
	Amount            int64             `gorm:"column:amount;not null"`
	OutstandingAmount int64             `gorm:"column:outstanding_amount;not null"`
	CurrencyCode      string            `gorm:"column:currency_code;size:3;not null"`
	DueDate           time.Time         `gorm:"column:due_date;type:date;not null;index:idx_scheduled_loan_due,priority:2"`
	Status            InstallmentStatus `gorm:"column:status;size:16;not null;default:'due'"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (ScheduledRepayment) TableName() string { return "scheduled_repayments" }

// Outstanding reports whether the installment still takes part in allocation.
func (s *ScheduledRepayment) Outstanding() bool {
	return s.Status == InstallmentDue || s.Status == InstallmentPartial
}

// DateOnly truncates t to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
