package loan

import (
	"sort"
	"time"
)

// ResidualTolerance is the largest loan outstanding amount (in minor units)
// that is treated as fully repaid after a recompute.
const ResidualTolerance int64 = 1

// SortByDueDate orders installments by (due_date, id) ascending.
func SortByDueDate(items []*ScheduledRepayment) {
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := DateOnly(items[i].DueDate), DateOnly(items[j].DueDate)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return items[i].ID < items[j].ID
	})
}

// Allocate distributes amount over the outstanding installments, oldest
// first, mutating them in place. It returns the installments it touched, in
// allocation order, so the caller can persist exactly that batch. Any surplus
// left after the last installment is dropped.
func Allocate(installments []*ScheduledRepayment, amount int64) []*ScheduledRepayment {
	open := make([]*ScheduledRepayment, 0, len(installments))
	for _, s := range installments {
		if s.Outstanding() {
			open = append(open, s)
		}
	}
	SortByDueDate(open)

	remaining := amount
	touched := make([]*ScheduledRepayment, 0, len(open))
	for _, s := range open {
		if remaining <= 0 {
			break
		}
		if remaining >= s.OutstandingAmount {
			remaining -= s.OutstandingAmount
			s.OutstandingAmount = 0
			s.Status = InstallmentRepaid
		} else {
			s.OutstandingAmount = remaining
			s.Status = InstallmentPartial
			remaining = 0
		}
		touched = append(touched, s)
	}
	return touched
}

// Recompute derives the loan's outstanding amount and status from the current
// state of all its installments after a repayment received at receivedAt.
//
// The deduction is the scheduled amount of every installment due on or before
// receivedAt, whatever its status, plus the outstanding amount of every
// partial installment. The result is floored at zero and a residual of
// ResidualTolerance or less is snapped to zero.
func (l *Loan) Recompute(installments []*ScheduledRepayment, receivedAt time.Time) {
	cutoff := DateOnly(receivedAt)

	var dueByCutoff, partial int64
	for _, s := range installments {
		if !DateOnly(s.DueDate).After(cutoff) {
			dueByCutoff += s.Amount
		}
		if s.Status == InstallmentPartial {
			partial += s.OutstandingAmount
		}
	}

	outstanding := l.OutstandingAmount - (dueByCutoff + partial)
	if outstanding <= ResidualTolerance {
		outstanding = 0
	}

	l.OutstandingAmount = outstanding
	if outstanding == 0 {
		l.Status = StatusRepaid
	} else {
		l.Status = StatusDue
	}
}
