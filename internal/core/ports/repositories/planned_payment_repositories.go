package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// PlannedPaymentReader defines read operations for planned payments
type PlannedPaymentReader interface {
	FindPlannedPaymentByID(ctx context.Context, plannedPaymentID int64) (*domain.PlannedPayment, error)
}
