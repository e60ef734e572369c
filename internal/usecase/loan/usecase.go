package loan

import (
	"context"

	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/uow"
	"repayment-engine/internal/infrastructure/logging"
	"repayment-engine/pkg/id"

	"github.com/sirupsen/logrus"
)

type Usecase struct {
	loans     loan.Repository
	schedules loan.ScheduleRepository
	uow       uow.UnitOfWork
	log       logrus.FieldLogger
}

// NewUsecase: repos serve reads, the UoW wraps loan creation.
func NewUsecase(loans loan.Repository, schedules loan.ScheduleRepository, tx uow.UnitOfWork, log logrus.FieldLogger) *Usecase {
	if log == nil {
		log = logging.Discard()
	}
	return &Usecase{loans: loans, schedules: schedules, uow: tx, log: log}
}

// Create stores a new loan and its full repayment schedule in one transaction.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	l, schedule, err := loan.NewLoan(id.NewID32(), in.UserID, in.Amount, in.CurrencyCode, in.Terms, in.ProcessedAt)
	if err != nil {
		return nil, err
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		for i := range schedule {
			schedule[i].LoanID = l.ID
		}
		return r.Schedules.CreateBatch(ctx, schedule)
	})
	if err != nil {
		u.log.WithError(err).WithField("user_id", in.UserID).Error("create loan failed")
		return nil, TranslateError(err)
	}

	items := make([]*loan.ScheduledRepayment, len(schedule))
	for i := range schedule {
		items[i] = &schedule[i]
	}
	u.log.WithFields(logrus.Fields{
		"loan_id":  l.LoanID,
		"amount":   l.Amount,
		"currency": l.CurrencyCode,
		"terms":    l.Terms,
	}).Info("loan created")
	return ToLoanDTO(l, items), nil
}

// Get returns the loan with its schedule. userID must own the loan; an empty
// userID owns nothing.
func (u *Usecase) Get(ctx context.Context, loanID, userID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, TranslateError(err)
	}
	if l.UserID != userID {
		return nil, loan.ErrForbidden
	}
	items, err := u.schedules.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, TranslateError(err)
	}
	return ToLoanDTO(l, items), nil
}
