package loanmock

import (
	"context"

	domain "repayment-engine/internal/domain/loan"
)

var (
	_ domain.Repository         = (*Repo)(nil)
	_ domain.ScheduleRepository = (*ScheduleRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset read methods fail with context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

// ScheduleRepo is a function-backed mock that satisfies domain.ScheduleRepository.
type ScheduleRepo struct {
	CreateBatchFn  func(ctx context.Context, items []domain.ScheduledRepayment) error
	ListByLoanIDFn func(ctx context.Context, loanNumericID uint64) ([]*domain.ScheduledRepayment, error)
	SaveBatchFn    func(ctx context.Context, items []*domain.ScheduledRepayment) error
}

func (m *ScheduleRepo) CreateBatch(ctx context.Context, items []domain.ScheduledRepayment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, items)
	}
	return nil
}

func (m *ScheduleRepo) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]*domain.ScheduledRepayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}

func (m *ScheduleRepo) SaveBatch(ctx context.Context, items []*domain.ScheduledRepayment) error {
	if m.SaveBatchFn != nil {
		return m.SaveBatchFn(ctx, items)
	}
	return nil
}
