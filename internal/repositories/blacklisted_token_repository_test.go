package repositories

import (
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/stretchr/testify/suite"
)

// BlacklistedTokenRepositorySuite defines the test suite for BlacklistedTokenRepository
type BlacklistedTokenRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     BlacklistedTokenRepositoryInterface
	testUser *models.User
}

// SetupTest runs before each test in the suite
func (s *BlacklistedTokenRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBlacklistedTokenRepository(s.db.DB)
	s.testUser = database.CreateTestUser(s.T(), s.db, "test@example.com")
}

// TearDownTest runs after each test in the suite
func (s *BlacklistedTokenRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestBlacklistedTokenRepositorySuite runs the test suite
func TestBlacklistedTokenRepositorySuite(t *testing.T) {
	suite.Run(t, new(BlacklistedTokenRepositorySuite))
}

func (s *BlacklistedTokenRepositorySuite) createToken(jti string, expiresAt time.Time) *models.BlacklistedToken {
	token := &models.BlacklistedToken{
		JTI:       jti,
		UserID:    s.testUser.ID,
		ExpiresAt: expiresAt,
	}
	s.Require().NoError(s.repo.Create(token))
	return token
}

// Test Create functionality
func (s *BlacklistedTokenRepositorySuite) TestCreate_StampsBlacklistedAt() {
	token := s.createToken("jti-1", time.Now().Add(time.Hour))

	s.NotZero(token.BlacklistedAt)
}

func (s *BlacklistedTokenRepositorySuite) TestCreate_DuplicateJTIRejected() {
	s.createToken("jti-1", time.Now().Add(time.Hour))

	duplicate := &models.BlacklistedToken{
		JTI:       "jti-1",
		UserID:    s.testUser.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	err := s.repo.Create(duplicate)
	s.Error(err)
}

// Test GetByJTI functionality
func (s *BlacklistedTokenRepositorySuite) TestGetByJTI() {
	created := s.createToken("jti-1", time.Now().Add(time.Hour))

	token, err := s.repo.GetByJTI("jti-1")
	s.NoError(err)
	s.Equal(created.ID, token.ID)
}

func (s *BlacklistedTokenRepositorySuite) TestGetByJTI_NotFound() {
	token, err := s.repo.GetByJTI("missing")
	s.ErrorIs(err, ErrBlacklistedTokenNotFound)
	s.Nil(token)
}

// Test DeleteExpired functionality
func (s *BlacklistedTokenRepositorySuite) TestDeleteExpired() {
	s.createToken("expired", time.Now().Add(-time.Hour))
	s.createToken("active", time.Now().Add(time.Hour))

	deleted, err := s.repo.DeleteExpired()
	s.NoError(err)
	s.Equal(int64(1), deleted)

	_, err = s.repo.GetByJTI("expired")
	s.ErrorIs(err, ErrBlacklistedTokenNotFound)

	_, err = s.repo.GetByJTI("active")
	s.NoError(err)
}
