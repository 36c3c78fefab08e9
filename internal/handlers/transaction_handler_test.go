package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}

type TransactionHandlerSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	transactionService *service_mocks.MockTransactionServiceInterface
	handler            *TransactionHandler
	e                  *echo.Echo
	userID             uuid.UUID
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionService = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.transactionService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *TransactionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerSuite) createBody() map[string]interface{} {
	return map[string]interface{}{
		"accountId":   uuid.New().String(),
		"categoryId":  uuid.New().String(),
		"amount":      "42.50",
		"type":        models.TransactionTypeExpense,
		"description": gofakeit.Sentence(3),
		"date":        "2024-03-10",
		"isNecessary": true,
	}
}

func (s *TransactionHandlerSuite) TestCreate() {
	s.Run("successful creation", func() {
		body, _ := json.Marshal(s.createBody())

		expected := &models.Transaction{
			ID:          uuid.New(),
			UserID:      s.userID,
			Amount:      decimal.NewFromFloat(42.50),
			Type:        models.TransactionTypeExpense,
			Description: gofakeit.Sentence(3),
			Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			IsNecessary: true,
		}

		s.transactionService.EXPECT().
			Create(s.userID, gomock.Any()).
			Return(expected, nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPost, "/transactions", body, s.userID)

		s.NoError(s.handler.Create(c))
		s.Equal(http.StatusCreated, rec.Code)

		var response SuccessResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &response)
		s.NotNil(response.Data)
	})

	s.Run("unknown account", func() {
		body, _ := json.Marshal(s.createBody())

		s.transactionService.EXPECT().
			Create(s.userID, gomock.Any()).
			Return(nil, services.ErrAccountNotFound).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPost, "/transactions", body, s.userID)

		s.NoError(s.handler.Create(c))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("ACCOUNT_001", decodeError(&s.Suite, rec).Error.Code)
	})

	s.Run("unknown category", func() {
		body, _ := json.Marshal(s.createBody())

		s.transactionService.EXPECT().
			Create(s.userID, gomock.Any()).
			Return(nil, services.ErrCategoryNotFound).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPost, "/transactions", body, s.userID)

		s.NoError(s.handler.Create(c))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("CATEGORY_001", decodeError(&s.Suite, rec).Error.Code)
	})

	s.Run("negative amount", func() {
		body, _ := json.Marshal(s.createBody())

		s.transactionService.EXPECT().
			Create(s.userID, gomock.Any()).
			Return(nil, services.ErrNegativeAmount).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPost, "/transactions", body, s.userID)

		s.NoError(s.handler.Create(c))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("TRANSACTION_002", decodeError(&s.Suite, rec).Error.Code)
	})

	s.Run("bad date format fails validation", func() {
		reqBody := s.createBody()
		reqBody["date"] = "10/03/2024"
		body, _ := json.Marshal(reqBody)

		// No expectation: the datetime rule rejects the value first
		c, _ := authedRequest(s.e, http.MethodPost, "/transactions", body, s.userID)

		s.Error(s.handler.Create(c))
	})

	s.Run("transfer type fails validation", func() {
		reqBody := s.createBody()
		reqBody["type"] = "transfer"
		body, _ := json.Marshal(reqBody)

		c, _ := authedRequest(s.e, http.MethodPost, "/transactions", body, s.userID)

		s.Error(s.handler.Create(c))
	})
}

func (s *TransactionHandlerSuite) TestList() {
	s.Run("forwards filters and echoes pagination", func() {
		accountID := uuid.New()
		transactions := []models.Transaction{
			{ID: uuid.New(), UserID: s.userID, Amount: decimal.NewFromInt(30), Type: models.TransactionTypeExpense},
			{ID: uuid.New(), UserID: s.userID, Amount: decimal.NewFromInt(20), Type: models.TransactionTypeExpense},
		}

		s.transactionService.EXPECT().
			List(s.userID, gomock.Any()).
			DoAndReturn(func(_ uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
				s.NotNil(filters.AccountID)
				s.Equal(accountID, *filters.AccountID)
				s.Equal(models.TransactionTypeExpense, filters.Type)
				s.Equal(10, filters.Offset)
				s.Equal(25, filters.Limit)
				return transactions, 42, nil
			}).
			Times(1)

		target := "/transactions?accountId=" + accountID.String() + "&type=expense&offset=10&limit=25"
		c, rec := authedRequest(s.e, http.MethodGet, target, nil, s.userID)

		s.NoError(s.handler.List(c))
		s.Equal(http.StatusOK, rec.Code)

		var response dto.TransactionListResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Len(response.Transactions, 2)
		s.Equal(int64(42), response.Total)
		s.Equal(10, response.Offset)
	})

	s.Run("malformed account filter", func() {
		c, rec := authedRequest(s.e, http.MethodGet, "/transactions?accountId=not-a-uuid", nil, s.userID)

		s.NoError(s.handler.List(c))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("VALIDATION_003", decodeError(&s.Suite, rec).Error.Code)
	})

	s.Run("malformed date filter", func() {
		c, rec := authedRequest(s.e, http.MethodGet, "/transactions?dateFrom=March+1", nil, s.userID)

		s.NoError(s.handler.List(c))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("VALIDATION_003", decodeError(&s.Suite, rec).Error.Code)
	})
}

func (s *TransactionHandlerSuite) TestGet() {
	s.Run("found", func() {
		transactionID := uuid.New()
		expected := &models.Transaction{ID: transactionID, UserID: s.userID, Amount: decimal.NewFromInt(10), Type: models.TransactionTypeExpense}

		s.transactionService.EXPECT().
			GetByID(s.userID, transactionID).
			Return(expected, nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodGet, "/transactions/"+transactionID.String(), nil, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		s.NoError(s.handler.Get(c))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("not found", func() {
		transactionID := uuid.New()

		s.transactionService.EXPECT().
			GetByID(s.userID, transactionID).
			Return(nil, services.ErrTransactionNotFound).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodGet, "/transactions/"+transactionID.String(), nil, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		s.NoError(s.handler.Get(c))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("TRANSACTION_001", decodeError(&s.Suite, rec).Error.Code)
	})
}

func (s *TransactionHandlerSuite) TestUpdate() {
	s.Run("changes amount", func() {
		transactionID := uuid.New()
		body, _ := json.Marshal(map[string]string{"amount": "60.00"})

		expected := &models.Transaction{ID: transactionID, UserID: s.userID, Amount: decimal.NewFromInt(60), Type: models.TransactionTypeExpense}

		s.transactionService.EXPECT().
			Update(s.userID, transactionID, gomock.Any()).
			Return(expected, nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPut, "/transactions/"+transactionID.String(), body, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		s.NoError(s.handler.Update(c))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("not found", func() {
		transactionID := uuid.New()
		body, _ := json.Marshal(map[string]string{"amount": "60.00"})

		s.transactionService.EXPECT().
			Update(s.userID, transactionID, gomock.Any()).
			Return(nil, services.ErrTransactionNotFound).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodPut, "/transactions/"+transactionID.String(), body, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		s.NoError(s.handler.Update(c))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("TRANSACTION_001", decodeError(&s.Suite, rec).Error.Code)
	})
}

func (s *TransactionHandlerSuite) TestDelete() {
	s.Run("successful deletion", func() {
		transactionID := uuid.New()

		s.transactionService.EXPECT().
			Delete(s.userID, transactionID).
			Return(nil).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodDelete, "/transactions/"+transactionID.String(), nil, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		s.NoError(s.handler.Delete(c))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("not found", func() {
		transactionID := uuid.New()

		s.transactionService.EXPECT().
			Delete(s.userID, transactionID).
			Return(services.ErrTransactionNotFound).
			Times(1)

		c, rec := authedRequest(s.e, http.MethodDelete, "/transactions/"+transactionID.String(), nil, s.userID)
		c.SetParamNames("id")
		c.SetParamValues(transactionID.String())

		s.NoError(s.handler.Delete(c))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("TRANSACTION_001", decodeError(&s.Suite, rec).Error.Code)
	})
}
