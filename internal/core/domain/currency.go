package domain

// Currency represents a supported currency. Code is the ISO 4217 code used as
// the conversion key.
type Currency struct {
	CurrencyID int64  `json:"currencyID"`
	Code       string `json:"code"` // e.g., "USD"
	Name       string `json:"name"` // e.g., "US Dollar"
}
