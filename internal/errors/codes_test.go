package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Auth Invalid Credentials",
			code:     AuthInvalidCredentials,
			expected: "Invalid email or password",
		},
		{
			name:     "Auth Account Locked",
			code:     AuthAccountLocked,
			expected: "Account is locked due to too many failed login attempts",
		},
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "User Not Found",
			code:     UserNotFound,
			expected: "User not found",
		},
		{
			name:     "Account Has Activity",
			code:     AccountHasActivity,
			expected: "Account has transactions and cannot be deleted",
		},
		{
			name:     "Category Default Read Only",
			code:     CategoryDefaultReadOnly,
			expected: "Default categories cannot be modified or deleted",
		},
		{
			name:     "Budget Already Exists",
			code:     BudgetAlreadyExists,
			expected: "A budget already exists for this category",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An internal error occurred",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			message := GetErrorMessage(tc.code)
			s.Equal(tc.expected, message)
		})
	}
}

// TestGetErrorMessage_InvalidCode tests getting message for invalid error code
func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	message := GetErrorMessage("INVALID_CODE")
	s.Equal("An unexpected error occurred", message)
}

// TestIsValidErrorCode_ValidCodes tests validation of valid error codes
func (s *CodesTestSuite) TestIsValidErrorCode_ValidCodes() {
	validCodes := []ErrorCode{
		AuthInvalidCredentials,
		AuthMissingToken,
		AuthExpiredToken,
		AuthInvalidTokenFormat,
		AuthInsufficientPermission,
		AuthAccountLocked,
		ValidationGeneral,
		ValidationRequiredField,
		ValidationInvalidFormat,
		ValidationOutOfRange,
		ValidationInvalidEmail,
		ValidationInvalidDate,
		UserNotFound,
		UserAlreadyExists,
		UserInvalidID,
		AccountNotFound,
		AccountInvalidType,
		AccountHasActivity,
		CategoryNotFound,
		CategoryDefaultReadOnly,
		CategoryInUse,
		TransactionNotFound,
		TransactionInvalidAmount,
		TransactionInvalidType,
		TransactionInvalidDate,
		BudgetNotFound,
		BudgetAlreadyExists,
		BudgetInvalidLimit,
		SystemInternalError,
		SystemDatabaseError,
		SystemServiceUnavailable,
		SystemConfigurationError,
		SystemRateLimitExceeded,
	}

	for _, code := range validCodes {
		s.Run(string(code), func() {
			s.True(IsValidErrorCode(code), "Expected %s to be valid", code)
		})
	}
}

// TestIsValidErrorCode_InvalidCodes tests validation of invalid error codes
func (s *CodesTestSuite) TestIsValidErrorCode_InvalidCodes() {
	invalidCodes := []ErrorCode{
		"INVALID_CODE",
		"AUTH_999",
		"",
		"random_string",
	}

	for _, code := range invalidCodes {
		s.Run(string(code), func() {
			s.False(IsValidErrorCode(code), "Expected %s to be invalid", code)
		})
	}
}
