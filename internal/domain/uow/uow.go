package uow

import (
	"context"
	"errors"

	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/repayment"
)

// ErrTransactionFailure marks storage or commit failures inside a unit of
// work. It is always wrapped together with the underlying cause.
var ErrTransactionFailure = errors.New("transaction failed")

// Repos are bound to the transaction of the unit of work that created them.
type Repos struct {
	Loans      loan.Repository
	Schedules  loan.ScheduleRepository
	Repayments repayment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
