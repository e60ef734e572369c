package repaymentmock

import (
	"context"

	domain "repayment-engine/internal/domain/repayment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.ReceivedRepayment) error
	ListByLoanIDFn     func(ctx context.Context, loanNumericID uint64) ([]domain.ReceivedRepayment, error)
	GetByRepaymentIDFn func(ctx context.Context, repaymentID string) (*domain.ReceivedRepayment, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.ReceivedRepayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]domain.ReceivedRepayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRepaymentID(ctx context.Context, repaymentID string) (*domain.ReceivedRepayment, error) {
	if m.GetByRepaymentIDFn != nil {
		return m.GetByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, context.Canceled
}
