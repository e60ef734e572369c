package gormstore

import (
	"context"
	"fmt"

	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:      &LoanRepository{db: tx},
		Schedules:  &ScheduleRepository{db: tx},
		Repayments: &RepaymentRepository{db: tx},
	}
}

// run distinguishes errors returned by fn, which pass through untouched,
// from begin/commit failures, which are wrapped as ErrTransactionFailure.
func (u *GormUoW) run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var fnErr error
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(tx)
		return fnErr
	})
	if err != nil && fnErr == nil {
		return fmt.Errorf("%w: %w", uow.ErrTransactionFailure, err)
	}
	return err
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.run(ctx, func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.run(ctx, func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front so payments on one loan run one at a time
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
