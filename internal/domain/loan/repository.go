package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row until the surrounding tx ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
}

type ScheduleRepository interface {
	// CreateBatch inserts all installments of one loan in a single statement.
	CreateBatch(ctx context.Context, items []ScheduledRepayment) error
	// ListByLoanID returns every installment of the loan ordered by (due_date, id).
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]*ScheduledRepayment, error)
	// SaveBatch persists the given installment updates.
	SaveBatch(ctx context.Context, items []*ScheduledRepayment) error
}
