package gormstore

import (
	"context"

	loanDomain "repayment-engine/internal/domain/loan"

	"gorm.io/gorm"
)

type ScheduleRepository struct{ db *gorm.DB }

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository { return &ScheduleRepository{db: db} }

func (r *ScheduleRepository) CreateBatch(ctx context.Context, items []loanDomain.ScheduledRepayment) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *ScheduleRepository) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]*loanDomain.ScheduledRepayment, error) {
	var out []*loanDomain.ScheduledRepayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// SaveBatch writes only the allocation columns so a stale amount can never
// be written back over the scheduled one.
func (r *ScheduleRepository) SaveBatch(ctx context.Context, items []*loanDomain.ScheduledRepayment) error {
	for _, s := range items {
		err := r.db.WithContext(ctx).
			Model(s).
			Select("outstanding_amount", "status", "updated_at").
			Updates(s).Error
		if err != nil {
			return err
		}
	}
	return nil
}
