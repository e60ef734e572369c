package repayment

import "context"

type Repository interface {
	// Create records one received repayment; rows are never updated afterwards.
	Create(ctx context.Context, r *ReceivedRepayment) error

	// ListByLoanID returns the loan's received repayments, oldest first.
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]ReceivedRepayment, error)

	// Get by public repayment_id
	GetByRepaymentID(ctx context.Context, repaymentID string) (*ReceivedRepayment, error)
}
