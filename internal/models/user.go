package models

import "time"

// User is a registered identity. Rows are immutable after creation; there
// are no profile update or delete routes.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
