package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	accountRepo     *repository_mocks.MockAccountRepositoryInterface
	categoryRepo    *repository_mocks.MockCategoryRepositoryInterface
	service         TransactionServiceInterface

	userID     uuid.UUID
	account    *models.Account
	category   *models.Category
	categoryID uuid.UUID
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.service = NewTransactionService(s.transactionRepo, s.accountRepo, s.categoryRepo, nil, slog.Default())

	s.userID = uuid.New()
	s.account = &models.Account{ID: uuid.New(), UserID: s.userID, Name: "Checking"}
	s.categoryID = uuid.New()
	s.category = &models.Category{ID: s.categoryID, Name: "Groceries", IsDefault: true}
}

func (s *TransactionServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) createRequest() *dto.CreateTransactionRequest {
	return &dto.CreateTransactionRequest{
		AccountID:   s.account.ID.String(),
		CategoryID:  s.categoryID.String(),
		Amount:      "42.50",
		Type:        models.TransactionTypeExpense,
		Description: "Weekly groceries",
		Date:        "2024-03-10",
	}
}

func (s *TransactionServiceTestSuite) TestCreate_ExpenseDecreasesBalance() {
	req := s.createRequest()

	s.accountRepo.EXPECT().GetByID(s.account.ID).Return(s.account, nil)
	s.categoryRepo.EXPECT().GetByID(s.categoryID).Return(s.category, nil)

	var createdID uuid.UUID
	s.transactionRepo.EXPECT().CreateWithBalance(gomock.Any()).DoAndReturn(func(txn *models.Transaction) error {
		txn.ID = uuid.New()
		createdID = txn.ID
		s.True(txn.Amount.Equal(decimal.NewFromFloat(42.50)))
		s.Equal(models.TransactionTypeExpense, txn.Type)
		s.True(txn.SignedAmount().Equal(decimal.NewFromFloat(-42.50)))
		return nil
	})
	s.transactionRepo.EXPECT().GetByID(gomock.Any()).DoAndReturn(func(id uuid.UUID) (*models.Transaction, error) {
		s.Equal(createdID, id)
		return &models.Transaction{ID: id, UserID: s.userID}, nil
	})

	transaction, err := s.service.Create(s.userID, req)

	s.NoError(err)
	s.NotNil(transaction)
}

func (s *TransactionServiceTestSuite) TestCreate_IncomeIncreasesBalance() {
	req := s.createRequest()
	req.Type = models.TransactionTypeIncome
	req.Amount = "1000"

	s.accountRepo.EXPECT().GetByID(s.account.ID).Return(s.account, nil)
	s.categoryRepo.EXPECT().GetByID(s.categoryID).Return(s.category, nil)
	s.transactionRepo.EXPECT().CreateWithBalance(gomock.Any()).DoAndReturn(func(txn *models.Transaction) error {
		s.True(txn.SignedAmount().Equal(decimal.NewFromInt(1000)))
		return nil
	})
	s.transactionRepo.EXPECT().GetByID(gomock.Any()).Return(&models.Transaction{}, nil)

	_, err := s.service.Create(s.userID, req)

	s.NoError(err)
}

func (s *TransactionServiceTestSuite) TestCreate_OtherUsersAccountRejected() {
	req := s.createRequest()
	otherAccount := &models.Account{ID: s.account.ID, UserID: uuid.New()}

	s.accountRepo.EXPECT().GetByID(s.account.ID).Return(otherAccount, nil)

	transaction, err := s.service.Create(s.userID, req)

	s.ErrorIs(err, ErrAccountNotFound)
	s.Nil(transaction)
}

func (s *TransactionServiceTestSuite) TestCreate_OtherUsersCategoryRejected() {
	req := s.createRequest()
	ownerID := uuid.New()
	personal := &models.Category{ID: s.categoryID, UserID: &ownerID, Name: "Private"}

	s.accountRepo.EXPECT().GetByID(s.account.ID).Return(s.account, nil)
	s.categoryRepo.EXPECT().GetByID(s.categoryID).Return(personal, nil)

	transaction, err := s.service.Create(s.userID, req)

	s.ErrorIs(err, ErrCategoryNotFound)
	s.Nil(transaction)
}

func (s *TransactionServiceTestSuite) TestCreate_NegativeAmountRejected() {
	req := s.createRequest()
	req.Amount = "-10"

	s.accountRepo.EXPECT().GetByID(s.account.ID).Return(s.account, nil)
	s.categoryRepo.EXPECT().GetByID(s.categoryID).Return(s.category, nil)

	transaction, err := s.service.Create(s.userID, req)

	s.ErrorIs(err, ErrNegativeAmount)
	s.Nil(transaction)
}

func (s *TransactionServiceTestSuite) TestCreate_InvalidTypeRejected() {
	req := s.createRequest()
	req.Type = "transfer"

	s.accountRepo.EXPECT().GetByID(s.account.ID).Return(s.account, nil)
	s.categoryRepo.EXPECT().GetByID(s.categoryID).Return(s.category, nil)

	transaction, err := s.service.Create(s.userID, req)

	s.ErrorIs(err, ErrInvalidTransactionType)
	s.Nil(transaction)
}

func (s *TransactionServiceTestSuite) TestCreate_InvalidDateRejected() {
	req := s.createRequest()
	req.Date = "10/03/2024"

	s.accountRepo.EXPECT().GetByID(s.account.ID).Return(s.account, nil)
	s.categoryRepo.EXPECT().GetByID(s.categoryID).Return(s.category, nil)

	transaction, err := s.service.Create(s.userID, req)

	s.ErrorIs(err, ErrInvalidDate)
	s.Nil(transaction)
}

func (s *TransactionServiceTestSuite) TestGetByID_OtherUsersTransactionReportedNotFound() {
	transaction := &models.Transaction{ID: uuid.New(), UserID: uuid.New()}

	s.transactionRepo.EXPECT().GetByID(transaction.ID).Return(transaction, nil)

	got, err := s.service.GetByID(s.userID, transaction.ID)

	s.ErrorIs(err, ErrTransactionNotFound)
	s.Nil(got)
}

func (s *TransactionServiceTestSuite) TestList_DefaultsAndCapsPageSize() {
	for _, tc := range []struct {
		limit    int
		expected int
	}{
		{0, DefaultTransactionPageSize},
		{-5, DefaultTransactionPageSize},
		{250, MaxTransactionPageSize},
		{50, 50},
	} {
		s.transactionRepo.EXPECT().
			GetWithFilters(gomock.Any()).
			DoAndReturn(func(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
				s.Equal(s.userID, filters.UserID)
				s.Equal(tc.expected, filters.Limit, "limit=%d", tc.limit)
				return nil, 0, nil
			})

		_, _, err := s.service.List(s.userID, models.TransactionFilters{Limit: tc.limit})
		s.NoError(err)
	}
}

func (s *TransactionServiceTestSuite) TestUpdate_AmountChangeRebalancesAccount() {
	existing := &models.Transaction{
		ID:         uuid.New(),
		UserID:     s.userID,
		AccountID:  s.account.ID,
		CategoryID: s.categoryID,
		Amount:     decimal.NewFromInt(100),
		Type:       models.TransactionTypeExpense,
		Date:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	newAmount := "60"
	req := &dto.UpdateTransactionRequest{Amount: &newAmount}

	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	// the old -100 is handed over for reversal alongside the new -60
	s.transactionRepo.EXPECT().
		UpdateWithBalance(gomock.Any(), s.account.ID, gomock.Any()).
		DoAndReturn(func(txn *models.Transaction, _ uuid.UUID, previousSigned decimal.Decimal) error {
			s.True(previousSigned.Equal(decimal.NewFromInt(-100)))
			s.True(txn.SignedAmount().Equal(decimal.NewFromInt(-60)))
			return nil
		})
	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)

	_, err := s.service.Update(s.userID, existing.ID, req)

	s.NoError(err)
}

func (s *TransactionServiceTestSuite) TestUpdate_MovingAccountsRebalancesBoth() {
	otherAccount := &models.Account{ID: uuid.New(), UserID: s.userID, Name: "Savings"}
	existing := &models.Transaction{
		ID:         uuid.New(),
		UserID:     s.userID,
		AccountID:  s.account.ID,
		CategoryID: s.categoryID,
		Amount:     decimal.NewFromInt(50),
		Type:       models.TransactionTypeExpense,
		Date:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	newAccountID := otherAccount.ID.String()
	req := &dto.UpdateTransactionRequest{AccountID: &newAccountID}

	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.accountRepo.EXPECT().GetByID(otherAccount.ID).Return(otherAccount, nil)
	s.transactionRepo.EXPECT().
		UpdateWithBalance(gomock.Any(), s.account.ID, gomock.Any()).
		DoAndReturn(func(txn *models.Transaction, previousAccountID uuid.UUID, previousSigned decimal.Decimal) error {
			s.Equal(s.account.ID, previousAccountID)
			s.Equal(otherAccount.ID, txn.AccountID)
			s.True(previousSigned.Equal(decimal.NewFromInt(-50)))
			s.True(txn.SignedAmount().Equal(decimal.NewFromInt(-50)))
			return nil
		})
	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)

	_, err := s.service.Update(s.userID, existing.ID, req)

	s.NoError(err)
}

func (s *TransactionServiceTestSuite) TestDelete_ReversesBalance() {
	existing := &models.Transaction{
		ID:        uuid.New(),
		UserID:    s.userID,
		AccountID: s.account.ID,
		Amount:    decimal.NewFromInt(75),
		Type:      models.TransactionTypeIncome,
	}

	s.transactionRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.transactionRepo.EXPECT().DeleteWithBalance(existing).Return(nil)

	err := s.service.Delete(s.userID, existing.ID)

	s.NoError(err)
}

func (s *TransactionServiceTestSuite) TestCreate_WriteFailurePropagates() {
	req := s.createRequest()

	s.accountRepo.EXPECT().GetByID(s.account.ID).Return(s.account, nil)
	s.categoryRepo.EXPECT().GetByID(s.categoryID).Return(s.category, nil)
	s.transactionRepo.EXPECT().CreateWithBalance(gomock.Any()).Return(errors.New("database error"))

	transaction, err := s.service.Create(s.userID, req)

	s.Error(err)
	s.Nil(transaction)
}

func (s *TransactionServiceTestSuite) TestDelete_NotFound() {
	transactionID := uuid.New()

	s.transactionRepo.EXPECT().GetByID(transactionID).Return(nil, repositories.ErrTransactionNotFound)

	err := s.service.Delete(s.userID, transactionID)

	s.ErrorIs(err, ErrTransactionNotFound)
}
