package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters contains filtering options for transaction queries.
// Zero values mean "no filter".
type TransactionFilters struct {
	UserID     uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       string
	DateFrom   *time.Time
	DateTo     *time.Time
	Offset     int
	Limit      int
}
