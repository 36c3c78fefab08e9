package repositories

import (
	"testing"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AccountRepositorySuite defines the test suite for AccountRepository
type AccountRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     AccountRepositoryInterface
	testUser *models.User
}

// SetupTest runs before each test in the suite
func (s *AccountRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAccountRepository(s.db.DB)
	s.testUser = database.CreateTestUser(s.T(), s.db, "test@example.com")
}

// TearDownTest runs after each test in the suite
func (s *AccountRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestAccountRepositorySuite runs the test suite
func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositorySuite))
}

func (s *AccountRepositorySuite) createAccount(name string, balance float64) *models.Account {
	account := &models.Account{
		UserID:  s.testUser.ID,
		Name:    name,
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromFloat(balance),
	}
	s.Require().NoError(s.repo.Create(account))
	return account
}

// Test Create functionality
func (s *AccountRepositorySuite) TestCreate() {
	account := &models.Account{
		UserID:  s.testUser.ID,
		Name:    "Main Checking",
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromFloat(1000.00),
	}

	err := s.repo.Create(account)
	s.NoError(err)
	s.NotEqual(uuid.Nil, account.ID)
	s.NotZero(account.CreatedAt)
	s.NotZero(account.UpdatedAt)
}

func (s *AccountRepositorySuite) TestCreate_NilAccount() {
	err := s.repo.Create(nil)
	s.Error(err)
}

func (s *AccountRepositorySuite) TestCreate_InvalidType() {
	account := &models.Account{
		UserID: s.testUser.ID,
		Name:   "Weird",
		Type:   "cryptowallet",
	}

	err := s.repo.Create(account)
	s.Error(err)
}

// Test GetByID functionality
func (s *AccountRepositorySuite) TestGetByID() {
	created := s.createAccount("Main Checking", 500)

	account, err := s.repo.GetByID(created.ID)
	s.NoError(err)
	s.Equal(created.ID, account.ID)
	s.Equal("Main Checking", account.Name)
	s.True(account.Balance.Equal(decimal.NewFromInt(500)))
}

func (s *AccountRepositorySuite) TestGetByID_NotFound() {
	account, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrAccountNotFound)
	s.Nil(account)
}

// Test GetByUserID functionality
func (s *AccountRepositorySuite) TestGetByUserID_OrderedByName() {
	s.createAccount("Savings", 200)
	s.createAccount("Checking", 100)

	otherUser := database.CreateTestUser(s.T(), s.db, "other@example.com")
	other := &models.Account{
		UserID: otherUser.ID,
		Name:   "Not Mine",
		Type:   models.AccountTypeOther,
	}
	s.Require().NoError(s.repo.Create(other))

	accounts, err := s.repo.GetByUserID(s.testUser.ID)
	s.NoError(err)
	s.Len(accounts, 2)
	s.Equal("Checking", accounts[0].Name)
	s.Equal("Savings", accounts[1].Name)
}

func (s *AccountRepositorySuite) TestGetByUserID_Empty() {
	accounts, err := s.repo.GetByUserID(uuid.New())
	s.NoError(err)
	s.Empty(accounts)
}

// Test Update functionality
func (s *AccountRepositorySuite) TestUpdate() {
	account := s.createAccount("Old Name", 100)

	account.Name = "New Name"
	err := s.repo.Update(account)
	s.NoError(err)

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.Equal("New Name", reloaded.Name)
}

// Test Delete functionality
func (s *AccountRepositorySuite) TestDelete() {
	account := s.createAccount("Doomed", 0)

	err := s.repo.Delete(account.ID)
	s.NoError(err)

	_, err = s.repo.GetByID(account.ID)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestDelete_NotFound() {
	err := s.repo.Delete(uuid.New())
	s.ErrorIs(err, ErrAccountNotFound)
}

// Test adjustAccountBalance functionality
func (s *AccountRepositorySuite) TestAdjustAccountBalance() {
	account := s.createAccount("Checking", 100)

	err := adjustAccountBalance(s.db.DB, account.ID, decimal.NewFromFloat(49.50))
	s.NoError(err)
	err = adjustAccountBalance(s.db.DB, account.ID, decimal.NewFromFloat(-25.25))
	s.NoError(err)

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromFloat(124.25)))
}

func (s *AccountRepositorySuite) TestAdjustAccountBalance_CanGoNegative() {
	account := s.createAccount("Credit", 50)

	err := adjustAccountBalance(s.db.DB, account.ID, decimal.NewFromInt(-200))
	s.NoError(err)

	reloaded, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(reloaded.Balance.Equal(decimal.NewFromInt(-150)))
}

func (s *AccountRepositorySuite) TestAdjustAccountBalance_NotFound() {
	err := adjustAccountBalance(s.db.DB, uuid.New(), decimal.NewFromInt(10))
	s.ErrorIs(err, ErrAccountNotFound)
}

// Test GetTotalBalanceByUserID functionality
func (s *AccountRepositorySuite) TestGetTotalBalanceByUserID() {
	s.createAccount("Checking", 100.50)
	s.createAccount("Savings", 899.50)
	s.createAccount("Credit", -200)

	total, err := s.repo.GetTotalBalanceByUserID(s.testUser.ID)
	s.NoError(err)
	s.True(total.Equal(decimal.NewFromInt(800)))
}

func (s *AccountRepositorySuite) TestGetTotalBalanceByUserID_NoAccounts() {
	total, err := s.repo.GetTotalBalanceByUserID(uuid.New())
	s.NoError(err)
	s.True(total.IsZero())
}

// Test CountTransactions functionality
func (s *AccountRepositorySuite) TestCountTransactions() {
	account := s.createAccount("Checking", 0)
	category := database.CreateTestCategory(s.T(), s.db, nil, "Groceries", "#10b981")

	for i := 0; i < 3; i++ {
		txn := &models.Transaction{
			UserID:      s.testUser.ID,
			AccountID:   account.ID,
			CategoryID:  category.ID,
			Amount:      decimal.NewFromInt(10),
			Type:        models.TransactionTypeExpense,
			Description: "test",
			Date:        models.TruncateToDay(account.CreatedAt),
		}
		s.Require().NoError(s.db.DB.Create(txn).Error)
	}

	count, err := s.repo.CountTransactions(account.ID)
	s.NoError(err)
	s.Equal(int64(3), count)
}

func (s *AccountRepositorySuite) TestCountTransactions_None() {
	account := s.createAccount("Quiet", 0)

	count, err := s.repo.CountTransactions(account.ID)
	s.NoError(err)
	s.Equal(int64(0), count)
}
