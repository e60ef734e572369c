package http

import (
	"net/http"
	"time"

	"repayment-engine/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	// minor units, e.g. cents for SGD
	Amount       int64  `json:"amount"        validate:"required,gt=0"`
	CurrencyCode string `json:"currency_code" validate:"required,currency"`
	Terms        int    `json:"terms"         validate:"required,gt=0,lte=600"`
	// Accept canonical date `YYYY-MM-DD` (aligns with schema DATE)
	ProcessedAt string `json:"processed_at"  validate:"required,datetime=2006-01-02"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	uid, ok, err := userID(c)
	if !ok {
		return err
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	processedAt, _ := time.Parse(loan.DateLayout, req.ProcessedAt)

	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		UserID:       uid,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Terms:        req.Terms,
		ProcessedAt:  processedAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	uid, ok, err := userID(c)
	if !ok {
		return err
	}
	var p loanPath
	if ok, err := bindPath(c, &p); !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), p.LoanID, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
