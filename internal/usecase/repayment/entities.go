package repayment

import (
	"time"

	"repayment-engine/internal/domain/repayment"
	ucloan "repayment-engine/internal/usecase/loan"
	"repayment-engine/pkg/money"
)

type RecordInput struct {
	LoanID       string
	UserID       string    // caller identity; must own the loan, empty never does
	Amount       int64     // minor units
	CurrencyCode string    // must equal the loan currency
	ReceivedAt   time.Time // date-only is fine; store .UTC()
}

type RepaymentDTO struct {
	RepaymentID   string    `json:"repayment_id"`
	LoanID        string    `json:"loan_id"`
	Amount        int64     `json:"amount"`
	AmountDisplay string    `json:"amount_display"`
	CurrencyCode  string    `json:"currency_code"`
	ReceivedAt    string    `json:"received_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReceiptDTO is the audit record plus the loan state right after allocation.
type ReceiptDTO struct {
	Repayment RepaymentDTO    `json:"repayment"`
	Loan      *ucloan.LoanDTO `json:"loan"`
}

func toRepaymentDTO(r *repayment.ReceivedRepayment, publicLoanID string) RepaymentDTO {
	return RepaymentDTO{
		RepaymentID:   r.RepaymentID,
		LoanID:        publicLoanID,
		Amount:        r.Amount,
		AmountDisplay: money.Format(r.Amount, r.CurrencyCode),
		CurrencyCode:  r.CurrencyCode,
		ReceivedAt:    r.ReceivedAt.UTC().Format(ucloan.DateLayout),
		CreatedAt:     r.CreatedAt,
	}
}
