package domain

// User represents a user of the application in the domain.
type User struct {
	UserID int64  `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
