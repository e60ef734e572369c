package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domain "repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/uow"
	"repayment-engine/internal/testutil/loanmock"
	"repayment-engine/internal/testutil/repaymentmock"
	"repayment-engine/internal/testutil/uowmock"
	ucloan "repayment-engine/internal/usecase/loan"
	ucrepayment "repayment-engine/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var (
	owner    = strings.Repeat("a", 32)
	stranger = strings.Repeat("b", 32)
	knownLID = strings.Repeat("c", 32)
)

// -------- helpers --------

type server struct {
	e          *echo.Echo
	loans      *loanmock.Repo
	schedules  *loanmock.ScheduleRepo
	repayments *repaymentmock.Repo
}

// newServer wires real use cases over function mocks. The stored loan is a
// 9000 SGD loan over 3 terms owned by owner.
func newServer(t *testing.T) *server {
	t.Helper()
	stored, items, err := domain.NewLoan(knownLID, owner, 9000, "SGD", 3, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewLoan: %v", err)
	}
	stored.ID = 1
	schedule := make([]*domain.ScheduledRepayment, len(items))
	for i := range items {
		items[i].ID = uint64(i + 1)
		schedule[i] = &items[i]
	}

	lookup := func(ctx context.Context, loanID string) (*domain.Loan, error) {
		if loanID != knownLID {
			return nil, gorm.ErrRecordNotFound
		}
		return stored, nil
	}
	s := &server{
		loans: &loanmock.Repo{GetByLoanIDFn: lookup, GetByLoanIDForUpdateFn: lookup},
		schedules: &loanmock.ScheduleRepo{
			ListByLoanIDFn: func(context.Context, uint64) ([]*domain.ScheduledRepayment, error) {
				return schedule, nil
			},
		},
		repayments: &repaymentmock.Repo{},
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: s.loans, Schedules: s.schedules, Repayments: s.repayments})

	s.e = echo.New()
	s.e.Validator = NewValidator()
	Register(s.e, NewHandler(nil),
		NewLoanHandler(ucloan.NewUsecase(s.loans, s.schedules, tx, nil)),
		NewRepaymentHandler(ucrepayment.NewUsecase(s.loans, s.repayments, tx, nil)),
	)
	return s
}

func (s *server) do(method, path, user string, body any) *httptest.ResponseRecorder {
	var r *bytes.Reader
	switch b := body.(type) {
	case nil:
		r = bytes.NewReader(nil)
	case string:
		r = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != "" {
		req.Header.Set(HeaderUserID, user)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad error json: %v; raw=%s", err, rec.Body.String())
	}
	return er
}

// -------- tests --------

func TestCreateLoan_Success(t *testing.T) {
	s := newServer(t)
	s.loans.CreateFn = func(ctx context.Context, l *domain.Loan) error {
		if l.UserID != owner {
			t.Fatalf("loan owner = %s", l.UserID)
		}
		l.ID = 2
		l.CreatedAt = time.Now().UTC()
		return nil
	}

	rec := s.do(stdhttp.MethodPost, "/loans", owner, map[string]any{
		"amount":        1000000,
		"currency_code": "VND",
		"terms":         4,
		"processed_at":  "2024-03-15",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}

	var got ucloan.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(got.LoanID) != 32 || got.UserID != owner || got.Amount != 1000000 {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.AmountDisplay != "1000000" || got.Status != "due" {
		t.Fatalf("unexpected display/status: %+v", got)
	}
	if len(got.ScheduledRepayments) != 4 || got.ScheduledRepayments[0].DueDate != "2024-04-15" {
		t.Fatalf("unexpected schedule: %+v", got.ScheduledRepayments)
	}
}

func TestCreateLoan_BindError(t *testing.T) {
	s := newServer(t)

	rec := s.do(stdhttp.MethodPost, "/loans", owner, `{"amount":`)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if er := decodeError(t, rec); er.Error != "invalid body" {
		t.Fatalf("error = %q, want %q", er.Error, "invalid body")
	}
}

func TestCreateLoan_ValidationError(t *testing.T) {
	s := newServer(t)
	s.loans.CreateFn = func(context.Context, *domain.Loan) error {
		t.Fatal("Create must not be called for an invalid request")
		return nil
	}

	rec := s.do(stdhttp.MethodPost, "/loans", owner, map[string]any{
		"amount":        -5,
		"currency_code": "EUR",
		"terms":         0,
		"processed_at":  "15/03/2024",
	})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	er := decodeError(t, rec)
	if er.Error != "validation failed" {
		t.Fatalf("error = %q", er.Error)
	}
	for _, f := range []string{"Amount", "CurrencyCode", "Terms", "ProcessedAt"} {
		found := false
		for _, d := range er.Details {
			if d.Field == f {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing detail for %s: %+v", f, er.Details)
		}
	}
}

func TestCreateLoan_UserHeader(t *testing.T) {
	s := newServer(t)
	body := map[string]any{"amount": 100, "currency_code": "SGD", "terms": 1, "processed_at": "2024-01-01"}

	if rec := s.do(stdhttp.MethodPost, "/loans", "", body); rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("missing header: status = %d, want 401", rec.Code)
	}
	if rec := s.do(stdhttp.MethodPost, "/loans", "NOT-A-USER", body); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad header: status = %d, want 400", rec.Code)
	}
}

func TestCreateLoan_StorageFailure(t *testing.T) {
	s := newServer(t)
	s.schedules.CreateBatchFn = func(context.Context, []domain.ScheduledRepayment) error {
		return gorm.ErrInvalidDB
	}

	rec := s.do(stdhttp.MethodPost, "/loans", owner, map[string]any{
		"amount": 100, "currency_code": "SGD", "terms": 1, "processed_at": "2024-01-01",
	})
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if er := decodeError(t, rec); er.Error != "internal error" {
		t.Fatalf("error = %q", er.Error)
	}
}

func TestGetLoan(t *testing.T) {
	s := newServer(t)

	rec := s.do(stdhttp.MethodGet, "/loans/"+knownLID, owner, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got ucloan.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.LoanID != knownLID || got.OutstandingDisplay != "90.00" || len(got.ScheduledRepayments) != 3 {
		t.Fatalf("unexpected dto: %+v", got)
	}

	if rec := s.do(stdhttp.MethodGet, "/loans/"+knownLID, stranger, nil); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("stranger: status = %d, want 403", rec.Code)
	}
	if rec := s.do(stdhttp.MethodGet, "/loans/"+strings.Repeat("d", 32), owner, nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("unknown: status = %d, want 404", rec.Code)
	}
}

func TestGetLoan_MalformedLoanID(t *testing.T) {
	s := newServer(t)
	s.loans.GetByLoanIDFn = func(context.Context, string) (*domain.Loan, error) {
		t.Fatal("storage must not be reached")
		return nil, nil
	}

	for _, lid := range []string{"NOT-HEX", strings.Repeat("C", 32), strings.Repeat("c", 31)} {
		rec := s.do(stdhttp.MethodGet, "/loans/"+lid, owner, nil)
		if rec.Code != stdhttp.StatusBadRequest {
			t.Fatalf("%q: status = %d, want 400", lid, rec.Code)
		}
		if er := decodeError(t, rec); !containsFieldMsg(er.Details, "LoanID", "32-char lowercase hex") {
			t.Fatalf("%q: details = %+v", lid, er.Details)
		}
	}
}
