package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     int64     `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy int64     `json:"lastUpdatedBy"` // UserID Reference
}

// Touch stamps the update fields of the audit trail.
func (a *AuditFields) Touch(userID int64, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
}
