package http

import (
	"errors"
	"net/http"

	"repayment-engine/internal/domain/loan"

	"github.com/labstack/echo/v4"
)

const HeaderUserID = "Ax-User-Id"

// writeError maps domain errors → HTTP codes.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, loan.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrInvalidTerms),
		errors.Is(err, loan.ErrCurrencyMismatch):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// userID reads the caller identity set by the upstream auth layer. On a
// missing or malformed header it writes the response and returns ok=false.
func userID(c echo.Context) (string, bool, error) {
	uid := c.Request().Header.Get(HeaderUserID)
	if uid == "" {
		return "", false, c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + HeaderUserID})
	}
	if !reHex32.MatchString(uid) {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + HeaderUserID})
	}
	return uid, true, nil
}

type loanPath struct {
	LoanID string `param:"loan_id" validate:"hex32"`
}

type repaymentPath struct {
	LoanID      string `param:"loan_id"      validate:"hex32"`
	RepaymentID string `param:"repayment_id" validate:"hex32"`
}

// bindPath fills p from the route params and validates it. On failure it
// writes a 400 and returns ok=false.
func bindPath(c echo.Context, p any) (bool, error) {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, p); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid path"})
	}
	if err := c.Validate(p); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid path",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
