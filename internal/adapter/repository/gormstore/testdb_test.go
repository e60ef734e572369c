package gormstore

import (
	"testing"
	"time"

	loanDomain "repayment-engine/internal/domain/loan"
	"repayment-engine/internal/infrastructure/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with the production schema. A
// single connection keeps every query on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func makeLoan(loanID, userID string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:            loanID,
		UserID:            userID,
		Amount:            9000,
		CurrencyCode:      "SGD",
		Terms:             3,
		OutstandingAmount: 9000,
		ProcessedAt:       day(2024, 1, 1),
		Status:            loanDomain.StatusDue,
	}
}

// seedLoan stores a loan plus the schedule the builder produces for it.
func seedLoan(t *testing.T, gdb *gorm.DB, loanID, userID string, principal int64, terms int) *loanDomain.Loan {
	t.Helper()
	l, schedule, err := loanDomain.NewLoan(loanID, userID, principal, "SGD", terms, day(2024, 1, 1))
	if err != nil {
		t.Fatalf("new loan: %v", err)
	}
	if err := gdb.Create(l).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	for i := range schedule {
		schedule[i].LoanID = l.ID
	}
	if err := gdb.Create(&schedule).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	return l
}
