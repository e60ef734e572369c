package http

import "github.com/labstack/echo/v4"

// Register mounts the service routes. Mutating routes should sit behind the
// idempotency middleware, which the caller installs on e.
func Register(e *echo.Echo, h *Handler, loans *LoanHandler, repayments *RepaymentHandler) {
	e.GET("/health", h.Health)

	e.POST("/loans", loans.CreateLoan)
	e.GET("/loans/:loan_id", loans.GetLoan)
	e.POST("/loans/:loan_id/repayments", repayments.RepayLoan)
	e.GET("/loans/:loan_id/repayments", repayments.ListRepayments)
	e.GET("/loans/:loan_id/repayments/:repayment_id", repayments.GetRepayment)
}
