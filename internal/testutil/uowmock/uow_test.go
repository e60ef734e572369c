package uowmock

import (
	"context"
	"errors"
	"testing"

	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/uow"
	"repayment-engine/internal/testutil/loanmock"
	"repayment-engine/internal/testutil/repaymentmock"
)

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinLoanTx(ctx, "LN", func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinLoanTx default: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_ForwardsReposAndLockedLoan(t *testing.T) {
	ctx := context.Background()
	lock := &loan.Loan{ID: 7, LoanID: "LN-7"}
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, loanID string) (*loan.Loan, error) {
			if loanID != "LN-7" {
				t.Fatalf("loanID mismatch, got %s", loanID)
			}
			return lock, nil
		},
	}
	schedules := &loanmock.ScheduleRepo{}
	repayments := &repaymentmock.Repo{}
	m := Passthrough(uow.Repos{Loans: loans, Schedules: schedules, Repayments: repayments})

	called := 0
	err := m.WithinTx(ctx, func(r uow.Repos) error {
		called++
		if r.Loans != loans || r.Schedules != schedules || r.Repayments != repayments {
			t.Fatalf("WithinTx: repos not forwarded")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	err = m.WithinLoanTx(ctx, "LN-7", func(r uow.Repos, l *loan.Loan) error {
		called++
		if l != lock {
			t.Fatalf("WithinLoanTx: loan not forwarded: %+v", l)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	if called != 2 {
		t.Fatalf("inner fns ran %d times, want 2", called)
	}
}

func TestPassthrough_LockFailureSkipsFn(t *testing.T) {
	sentinel := errors.New("no such loan")
	m := Passthrough(uow.Repos{Loans: &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) { return nil, sentinel },
	}})

	err := m.WithinLoanTx(context.Background(), "LN", func(uow.Repos, *loan.Loan) error {
		t.Fatal("fn must not run when the lock read fails")
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want %v, got %v", sentinel, err)
	}
}
