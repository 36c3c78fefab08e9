package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthAccountLocked          ErrorCode = "AUTH_006"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
)

// User error codes (USER_*)
const (
	UserNotFound      ErrorCode = "USER_001"
	UserAlreadyExists ErrorCode = "USER_002"
	UserInvalidID     ErrorCode = "USER_003"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound    ErrorCode = "ACCOUNT_001"
	AccountInvalidType ErrorCode = "ACCOUNT_002"
	AccountHasActivity ErrorCode = "ACCOUNT_003"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound        ErrorCode = "CATEGORY_001"
	CategoryDefaultReadOnly ErrorCode = "CATEGORY_002"
	CategoryInUse           ErrorCode = "CATEGORY_003"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount ErrorCode = "TRANSACTION_002"
	TransactionInvalidType   ErrorCode = "TRANSACTION_003"
	TransactionInvalidDate   ErrorCode = "TRANSACTION_004"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound      ErrorCode = "BUDGET_001"
	BudgetAlreadyExists ErrorCode = "BUDGET_002"
	BudgetInvalidLimit  ErrorCode = "BUDGET_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions for this operation",
	AuthAccountLocked:          "Account is locked due to too many failed login attempts",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid format",
	ValidationOutOfRange:    "Value is out of acceptable range",
	ValidationInvalidEmail:  "Invalid email address",
	ValidationInvalidDate:   "Invalid date format",

	// User errors
	UserNotFound:      "User not found",
	UserAlreadyExists: "A user with this email already exists",
	UserInvalidID:     "Invalid user ID",

	// Account errors
	AccountNotFound:    "Account not found",
	AccountInvalidType: "Invalid account type",
	AccountHasActivity: "Account has transactions and cannot be deleted",

	// Category errors
	CategoryNotFound:        "Category not found",
	CategoryDefaultReadOnly: "Default categories cannot be modified or deleted",
	CategoryInUse:           "Category is referenced by transactions or budgets",

	// Transaction errors
	TransactionNotFound:      "Transaction not found",
	TransactionInvalidAmount: "Transaction amount must be non-negative",
	TransactionInvalidType:   "Transaction type must be income or expense",
	TransactionInvalidDate:   "Transaction date must be in YYYY-MM-DD format",

	// Budget errors
	BudgetNotFound:      "Budget not found",
	BudgetAlreadyExists: "A budget already exists for this category",
	BudgetInvalidLimit:  "Budget monthly limit must be positive",

	// System errors
	SystemInternalError:      "An internal error occurred",
	SystemDatabaseError:      "A database error occurred",
	SystemServiceUnavailable: "Service is temporarily unavailable",
	SystemConfigurationError: "Service configuration error",
	SystemRateLimitExceeded:  "Too many requests, please try again later",
}

// GetErrorMessage returns the default message for an error code
func GetErrorMessage(code ErrorCode) string {
	if message, exists := errorMessages[code]; exists {
		return message
	}
	return "An unexpected error occurred"
}

// IsValidErrorCode checks if an error code is registered
func IsValidErrorCode(code ErrorCode) bool {
	_, exists := errorMessages[code]
	return exists
}
