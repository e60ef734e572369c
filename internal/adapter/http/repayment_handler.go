package http

import (
	"net/http"
	"time"

	"repayment-engine/internal/usecase/loan"
	"repayment-engine/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type repayLoanReq struct {
	Amount       int64  `json:"amount"        validate:"required,gt=0"`
	CurrencyCode string `json:"currency_code" validate:"required,currency"`
	ReceivedAt   string `json:"received_at"   validate:"required,datetime=2006-01-02"`
}

func (h *RepaymentHandler) RepayLoan(c echo.Context) error {
	uid, ok, err := userID(c)
	if !ok {
		return err
	}
	var p loanPath
	if ok, err := bindPath(c, &p); !ok {
		return err
	}
	// Bind + validate body payload JSON
	var req repayLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	receivedAt, _ := time.Parse(loan.DateLayout, req.ReceivedAt)

	dto, err := h.uc.Record(c.Request().Context(), repayment.RecordInput{
		LoanID:       p.LoanID,
		UserID:       uid,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		ReceivedAt:   receivedAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RepaymentHandler) ListRepayments(c echo.Context) error {
	uid, ok, err := userID(c)
	if !ok {
		return err
	}
	var p loanPath
	if ok, err := bindPath(c, &p); !ok {
		return err
	}
	out, err := h.uc.List(c.Request().Context(), p.LoanID, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"repayments": out})
}

func (h *RepaymentHandler) GetRepayment(c echo.Context) error {
	uid, ok, err := userID(c)
	if !ok {
		return err
	}
	var p repaymentPath
	if ok, err := bindPath(c, &p); !ok {
		return err
	}
	out, err := h.uc.Get(c.Request().Context(), p.LoanID, p.RepaymentID, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
