package repayment

import (
	"context"
	"time"

	domainLoan "repayment-engine/internal/domain/loan"
	domainRepayment "repayment-engine/internal/domain/repayment"
	"repayment-engine/internal/domain/uow"
	"repayment-engine/internal/infrastructure/logging"
	ucloan "repayment-engine/internal/usecase/loan"
	"repayment-engine/pkg/id"

	"github.com/sirupsen/logrus"
)

type Usecase struct {
	loanRepo      domainLoan.Repository
	repaymentRepo domainRepayment.Repository
	uow           uow.UnitOfWork
	log           logrus.FieldLogger
}

// NewUsecase: pass both repos for reads and a UoW for the allocation flow.
func NewUsecase(loans domainLoan.Repository, repayments domainRepayment.Repository, tx uow.UnitOfWork, log logrus.FieldLogger) *Usecase {
	if log == nil {
		log = logging.Discard()
	}
	return &Usecase{loanRepo: loans, repaymentRepo: repayments, uow: tx, log: log}
}

// Record checks that the caller owns the loan and pays in its currency, then
// allocates the payment under the loan row lock.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*ReceiptDTO, error) {
	if in.Amount <= 0 {
		return nil, domainLoan.ErrInvalidAmount
	}

	var out *ReceiptDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.UserID != in.UserID {
			return domainLoan.ErrForbidden
		}
		if in.CurrencyCode != l.CurrencyCode {
			return domainLoan.ErrCurrencyMismatch
		}

		rr, items, err := allocate(ctx, r, l, in.Amount, in.CurrencyCode, in.ReceivedAt)
		if err != nil {
			return err
		}
		out = &ReceiptDTO{
			Repayment: toRepaymentDTO(rr, l.LoanID),
			Loan:      ucloan.ToLoanDTO(l, items),
		}
		return nil
	})
	if err != nil {
		u.log.WithError(err).WithField("loan_id", in.LoanID).Warn("record repayment failed")
		return nil, ucloan.TranslateError(err)
	}

	u.log.WithFields(logrus.Fields{
		"loan_id":      out.Loan.LoanID,
		"repayment_id": out.Repayment.RepaymentID,
		"amount":       in.Amount,
		"outstanding":  out.Loan.OutstandingAmount,
		"status":       out.Loan.Status,
	}).Info("repayment allocated")
	return out, nil
}

// allocate is the engine proper: audit record, waterfall over the schedule,
// loan recompute. It trusts its caller for ownership and currency checks and
// must run inside the unit of work that locked l.
func allocate(ctx context.Context, r uow.Repos, l *domainLoan.Loan, amount int64, currency string, receivedAt time.Time) (*domainRepayment.ReceivedRepayment, []*domainLoan.ScheduledRepayment, error) {
	rr := &domainRepayment.ReceivedRepayment{
		RepaymentID:  id.NewID32(),
		LoanID:       l.ID,
		Amount:       amount,
		CurrencyCode: currency,
		ReceivedAt:   domainLoan.DateOnly(receivedAt),
	}
	if err := r.Repayments.Create(ctx, rr); err != nil {
		return nil, nil, err
	}

	items, err := r.Schedules.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, nil, err
	}
	touched := domainLoan.Allocate(items, amount)
	if err := r.Schedules.SaveBatch(ctx, touched); err != nil {
		return nil, nil, err
	}

	l.Recompute(items, rr.ReceivedAt)
	if err := r.Loans.Save(ctx, l); err != nil {
		return nil, nil, err
	}
	// report the schedule in due order regardless of how storage returned it
	domainLoan.SortByDueDate(items)
	return rr, items, nil
}

// List returns the received repayments of a loan, oldest first.
func (u *Usecase) List(ctx context.Context, loanID, userID string) ([]RepaymentDTO, error) {
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, ucloan.TranslateError(err)
	}
	if l.UserID != userID {
		return nil, domainLoan.ErrForbidden
	}
	rows, err := u.repaymentRepo.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, ucloan.TranslateError(err)
	}
	out := make([]RepaymentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toRepaymentDTO(&rows[i], l.LoanID))
	}
	return out, nil
}

// Get returns one received repayment of a loan. A repayment that belongs to
// another loan is reported as not found.
func (u *Usecase) Get(ctx context.Context, loanID, repaymentID, userID string) (*RepaymentDTO, error) {
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, ucloan.TranslateError(err)
	}
	if l.UserID != userID {
		return nil, domainLoan.ErrForbidden
	}
	rr, err := u.repaymentRepo.GetByRepaymentID(ctx, repaymentID)
	if err != nil {
		return nil, ucloan.TranslateError(err)
	}
	if rr.LoanID != l.ID {
		return nil, domainLoan.ErrNotFound
	}
	out := toRepaymentDTO(rr, l.LoanID)
	return &out, nil
}
