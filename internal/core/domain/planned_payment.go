package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannedPayment is a scheduled payment a transaction may settle.
type PlannedPayment struct {
	PlannedPaymentID int64           `json:"plannedPaymentID"`
	OwnerID          int64           `json:"ownerID"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	DueDate          time.Time       `json:"dueDate"`
}
