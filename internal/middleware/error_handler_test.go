package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type ErrorHandlerSuite struct {
	suite.Suite
	e *echo.Echo
}

func TestErrorHandler(t *testing.T) {
	suite.Run(t, new(ErrorHandlerSuite))
}

func (s *ErrorHandlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.HTTPErrorHandler = CustomHTTPErrorHandler
}

func (s *ErrorHandlerSuite) handle(err error, traceID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	if traceID != "" {
		c.Set(TraceIDContextKey, traceID)
	}
	CustomHTTPErrorHandler(err, c)
	return rec
}

func (s *ErrorHandlerSuite) TestEchoHTTPErrorKeepsStatusAndMessage() {
	rec := s.handle(echo.NewHTTPError(http.StatusNotFound, "Budget not found"), "trace-404")

	s.Equal(http.StatusNotFound, rec.Code)

	var resp errors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("trace-404", resp.Error.TraceID)
	s.Equal("Budget not found", resp.Error.Message)
}

func (s *ErrorHandlerSuite) TestUnknownErrorBecomesSystemError() {
	rec := s.handle(stderrors.New("pq: connection reset"), "trace-500")

	s.Equal(http.StatusInternalServerError, rec.Code)

	var resp errors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("SYSTEM_001", resp.Error.Code)
	s.Equal("trace-500", resp.Error.TraceID)
	// The original error text must not leak to the client
	s.NotContains(rec.Body.String(), "connection reset")
}

func (s *ErrorHandlerSuite) TestMissingTraceIDFallsBackToUnknown() {
	rec := s.handle(stderrors.New("boom"), "")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "unknown")
}

func (s *ErrorHandlerSuite) TestValidationErrorsListFields() {
	type payload struct {
		Name  string `json:"name" validate:"required"`
		Color string `json:"color" validate:"required"`
	}
	err := validator.New().Struct(payload{})
	s.Require().Error(err)

	rec := s.handle(err, "trace-val")

	s.Equal(http.StatusBadRequest, rec.Code)

	var resp errors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("VALIDATION_001", resp.Error.Code)
	s.Len(resp.Error.Details, 2)
}

func (s *ErrorHandlerSuite) TestCommittedResponseIsLeftAlone() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(c.JSON(http.StatusOK, map[string]string{"status": "ok"}))

	CustomHTTPErrorHandler(stderrors.New("late failure"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ok")
}

func (s *ErrorHandlerSuite) TestStatusToCodeMapping() {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, "VALIDATION_001"},
		{http.StatusUnauthorized, "AUTH_002"},
		{http.StatusForbidden, "AUTH_005"},
		{http.StatusNotFound, "USER_001"},
		{http.StatusUnprocessableEntity, "VALIDATION_001"},
		{http.StatusTooManyRequests, "SYSTEM_005"},
		{http.StatusInternalServerError, "SYSTEM_001"},
		{http.StatusServiceUnavailable, "SYSTEM_003"},
		{999, "SYSTEM_001"},
	}

	for _, tc := range cases {
		s.Run(http.StatusText(tc.status), func() {
			rec := s.handle(echo.NewHTTPError(tc.status), "trace-map")
			s.Equal(tc.status, rec.Code)
			s.Contains(rec.Body.String(), tc.code)
		})
	}
}

func (s *ErrorHandlerSuite) TestResponseIsJSON() {
	rec := s.handle(stderrors.New("boom"), "trace-json")
	s.Contains(rec.Header().Get("Content-Type"), "application/json")
}
