package repositories

import (
	"testing"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// UserRepositorySuite defines the test suite for UserRepository
type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

// SetupTest runs before each test in the suite
func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

// TearDownTest runs after each test in the suite
func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestUserRepositorySuite runs the test suite
func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) createUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		Role:         models.RoleUser,
	}
	s.Require().NoError(s.repo.Create(user))
	return user
}

// Test Create functionality
func (s *UserRepositorySuite) TestCreate() {
	user := s.createUser("new@example.com")

	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
	s.Equal(models.RoleUser, user.Role)
}

func (s *UserRepositorySuite) TestCreate_DuplicateEmail() {
	s.createUser("taken@example.com")

	duplicate := &models.User{
		Email:        "taken@example.com",
		PasswordHash: "hashed_password",
		FirstName:    "Other",
		LastName:     "User",
	}

	err := s.repo.Create(duplicate)
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *UserRepositorySuite) TestCreate_NilUser() {
	err := s.repo.Create(nil)
	s.Error(err)
}

// Test GetByID functionality
func (s *UserRepositorySuite) TestGetByID() {
	created := s.createUser("lookup@example.com")

	user, err := s.repo.GetByID(created.ID)
	s.NoError(err)
	s.Equal(created.Email, user.Email)
}

func (s *UserRepositorySuite) TestGetByID_NotFound() {
	user, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
	s.Nil(user)
}

// Test GetByEmail functionality
func (s *UserRepositorySuite) TestGetByEmail() {
	created := s.createUser("byemail@example.com")

	user, err := s.repo.GetByEmail("byemail@example.com")
	s.NoError(err)
	s.Equal(created.ID, user.ID)
}

func (s *UserRepositorySuite) TestGetByEmail_NotFound() {
	user, err := s.repo.GetByEmail("missing@example.com")
	s.ErrorIs(err, ErrUserNotFound)
	s.Nil(user)
}

// Test Update functionality
func (s *UserRepositorySuite) TestUpdate() {
	user := s.createUser("update@example.com")

	user.FirstName = "Renamed"
	err := s.repo.Update(user)
	s.NoError(err)

	reloaded, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("Renamed", reloaded.FirstName)
}

// Test Delete functionality
func (s *UserRepositorySuite) TestDelete() {
	user := s.createUser("doomed@example.com")

	err := s.repo.Delete(user.ID)
	s.NoError(err)

	_, err = s.repo.GetByID(user.ID)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestDelete_NotFound() {
	err := s.repo.Delete(uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

// Test lockout bookkeeping
func (s *UserRepositorySuite) TestIncrementFailedLoginAttempts() {
	user := s.createUser("attempts@example.com")

	s.NoError(s.repo.IncrementFailedLoginAttempts(user.ID))
	s.NoError(s.repo.IncrementFailedLoginAttempts(user.ID))

	reloaded, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(2, reloaded.FailedLoginAttempts)
}

func (s *UserRepositorySuite) TestLockAndResetFailedLoginAttempts() {
	user := s.createUser("locked@example.com")

	s.NoError(s.repo.IncrementFailedLoginAttempts(user.ID))
	s.NoError(s.repo.LockUser(user.ID))

	locked, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.True(locked.IsLocked())

	s.NoError(s.repo.ResetFailedLoginAttempts(user.ID))

	unlocked, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.False(unlocked.IsLocked())
	s.Equal(0, unlocked.FailedLoginAttempts)
}

func (s *UserRepositorySuite) TestUpdateLastLogin() {
	user := s.createUser("lastlogin@example.com")
	s.Nil(user.LastLoginAt)

	err := s.repo.UpdateLastLogin(user.ID)
	s.NoError(err)

	reloaded, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.NotNil(reloaded.LastLoginAt)
}

func (s *UserRepositorySuite) TestCount() {
	count, err := s.repo.Count()
	s.NoError(err)
	s.Equal(int64(0), count)

	s.createUser("one@example.com")
	s.createUser("two@example.com")

	count, err = s.repo.Count()
	s.NoError(err)
	s.Equal(int64(2), count)
}
