package loan

import "time"

// BuildSchedule splits principal into terms monthly installments. Every
// installment but the last gets principal/terms (truncated); the last one
// absorbs the remainder so the amounts always sum to principal.
//
// Installment i is due on start + i months. Month-end overflow follows
// time.AddDate, so a Jan 31 start yields a first due date of Mar 2/3.
func BuildSchedule(principal int64, terms int, currency string, start time.Time) ([]ScheduledRepayment, error) {
	if terms <= 0 {
		return nil, ErrInvalidTerms
	}
	if principal <= 0 {
		return nil, ErrInvalidAmount
	}

	base := principal / int64(terms)
	last := principal - base*int64(terms-1)
	start = DateOnly(start)

	out := make([]ScheduledRepayment, 0, terms)
	for i := 1; i <= terms; i++ {
		amount := base
		if i == terms {
			amount = last
		}
		out = append(out, ScheduledRepayment{
			Amount:            amount,
			OutstandingAmount: amount,
			CurrencyCode:      currency,
			DueDate:           start.AddDate(0, i, 0),
			Status:            InstallmentDue,
		})
	}
	return out, nil
}

// NewLoan returns a loan in its initial state together with its schedule.
// The schedule rows carry no LoanID yet; the caller binds them once the
// loan row has a primary key.
func NewLoan(loanID, userID string, principal int64, currency string, terms int, processedAt time.Time) (*Loan, []ScheduledRepayment, error) {
	schedule, err := BuildSchedule(principal, terms, currency, processedAt)
	if err != nil {
		return nil, nil, err
	}
	l := &Loan{
		LoanID:            loanID,
		UserID:            userID,
		Amount:            principal,
		CurrencyCode:      currency,
		Terms:             terms,
		OutstandingAmount: principal,
		ProcessedAt:       DateOnly(processedAt),
		Status:            StatusDue,
	}
	return l, schedule, nil
}
