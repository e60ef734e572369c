package loan

import (
	"errors"
	"fmt"

	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/uow"

	"gorm.io/gorm"
)

var domainErrs = []error{
	loan.ErrNotFound,
	loan.ErrInvalidAmount,
	loan.ErrInvalidTerms,
	loan.ErrForbidden,
	loan.ErrCurrencyMismatch,
	uow.ErrTransactionFailure,
}

// TranslateError maps a missing row to loan.ErrNotFound, passes domain errors
// through, and wraps everything else as uow.ErrTransactionFailure.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	for _, d := range domainErrs {
		if errors.Is(err, d) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", uow.ErrTransactionFailure, err)
}
