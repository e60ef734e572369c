package loan

import (
	"time"

	"repayment-engine/internal/domain/loan"
	"repayment-engine/pkg/money"
)

const DateLayout = "2006-01-02"

type CreateLoanInput struct {
	UserID       string
	Amount       int64
	CurrencyCode string
	Terms        int
	ProcessedAt  time.Time
}

type ScheduledRepaymentDTO struct {
	Amount             int64  `json:"amount"`
	AmountDisplay      string `json:"amount_display"`
	OutstandingAmount  int64  `json:"outstanding_amount"`
	OutstandingDisplay string `json:"outstanding_display"`
	CurrencyCode       string `json:"currency_code"`
	DueDate            string `json:"due_date"`
	Status             string `json:"status"`
}

type LoanDTO struct {
	LoanID              string                  `json:"loan_id"`
	UserID              string                  `json:"user_id"`
	Amount              int64                   `json:"amount"`
	AmountDisplay       string                  `json:"amount_display"`
	CurrencyCode        string                  `json:"currency_code"`
	Terms               int                     `json:"terms"`
	OutstandingAmount   int64                   `json:"outstanding_amount"`
	OutstandingDisplay  string                  `json:"outstanding_display"`
	ProcessedAt         string                  `json:"processed_at"`
	Status              string                  `json:"status"`
	CreatedAt           time.Time               `json:"created_at"`
	ScheduledRepayments []ScheduledRepaymentDTO `json:"scheduled_repayments"`
}

func ToLoanDTO(l *loan.Loan, items []*loan.ScheduledRepayment) *LoanDTO {
	dto := &LoanDTO{
		LoanID:              l.LoanID,
		UserID:              l.UserID,
		Amount:              l.Amount,
		AmountDisplay:       money.Format(l.Amount, l.CurrencyCode),
		CurrencyCode:        l.CurrencyCode,
		Terms:               l.Terms,
		OutstandingAmount:   l.OutstandingAmount,
		OutstandingDisplay:  money.Format(l.OutstandingAmount, l.CurrencyCode),
		ProcessedAt:         l.ProcessedAt.UTC().Format(DateLayout),
		Status:              string(l.Status),
		CreatedAt:           l.CreatedAt,
		ScheduledRepayments: make([]ScheduledRepaymentDTO, 0, len(items)),
	}
	for _, s := range items {
		dto.ScheduledRepayments = append(dto.ScheduledRepayments, ScheduledRepaymentDTO{
			Amount:             s.Amount,
			AmountDisplay:      money.Format(s.Amount, s.CurrencyCode),
			OutstandingAmount:  s.OutstandingAmount,
			OutstandingDisplay: money.Format(s.OutstandingAmount, s.CurrencyCode),
			CurrencyCode:       s.CurrencyCode,
			DueDate:            s.DueDate.UTC().Format(DateLayout),
			Status:             string(s.Status),
		})
	}
	return dto
}
