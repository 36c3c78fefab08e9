package handlers

import (
	"fmt"
	"net/http"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Create records a new transaction
// @Summary Create a transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Create(userID, &req)
	if err != nil {
		if resp := transactionErrorResponse(c, err); resp != nil {
			return resp
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.TransactionResponse{Transaction: transaction},
		Message: "Transaction recorded successfully",
	})
}

// List returns a filtered, paginated list of the user's transactions
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Param accountId query string false "Filter by account"
// @Param categoryId query string false "Filter by category"
// @Param type query string false "Filter by type (income, expense)"
// @Param dateFrom query string false "Start date (2006-01-02)"
// @Param dateTo query string false "End date (2006-01-02)"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.TransactionListResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, err := parseTransactionFilters(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	transactions, total, err := h.transactionService.List(userID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Offset:       filters.Offset,
		Limit:        filters.Limit,
	})
}

// Get returns a single transaction
// @Summary Get a transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.transactionService.GetByID(userID, transactionID)
	if err != nil {
		if err == services.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionResponse{Transaction: transaction})
}

// Update modifies a transaction
// @Summary Update a transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Transaction changes"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Update(userID, transactionID, &req)
	if err != nil {
		if resp := transactionErrorResponse(c, err); resp != nil {
			return resp
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionResponse{Transaction: transaction})
}

// Delete removes a transaction and reverses its balance effect
// @Summary Delete a transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	if err := h.transactionService.Delete(userID, transactionID); err != nil {
		if err == services.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transaction deleted successfully"})
}

// transactionErrorResponse maps known transaction service errors to API
// responses; returns nil for unrecognized errors
func transactionErrorResponse(c echo.Context, err error) error {
	switch err {
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case services.ErrCategoryNotFound:
		return SendError(c, errors.CategoryNotFound)
	case services.ErrTransactionNotFound:
		return SendError(c, errors.TransactionNotFound)
	case services.ErrInvalidAmount, services.ErrNegativeAmount:
		return SendError(c, errors.TransactionInvalidAmount)
	case services.ErrInvalidTransactionType:
		return SendError(c, errors.TransactionInvalidType)
	case services.ErrInvalidDate:
		return SendError(c, errors.TransactionInvalidDate)
	}
	return nil
}

func invalidFilter(name string) error {
	return fmt.Errorf("invalid value for %s", name)
}

func parseTransactionFilters(c echo.Context) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{
		Type:   c.QueryParam("type"),
		Offset: getIntParam(c, "offset", 0),
		Limit:  getIntParam(c, "limit", 0),
	}

	if raw := c.QueryParam("accountId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filters, invalidFilter("accountId")
		}
		filters.AccountID = &id
	}

	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filters, invalidFilter("categoryId")
		}
		filters.CategoryID = &id
	}

	if raw := c.QueryParam("dateFrom"); raw != "" {
		date, err := time.Parse(models.TransactionDateLayout, raw)
		if err != nil {
			return filters, invalidFilter("dateFrom")
		}
		filters.DateFrom = &date
	}

	if raw := c.QueryParam("dateTo"); raw != "" {
		date, err := time.Parse(models.TransactionDateLayout, raw)
		if err != nil {
			return filters, invalidFilter("dateTo")
		}
		filters.DateTo = &date
	}

	return filters, nil
}
