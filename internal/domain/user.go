package domain

import "time"

// User represents a registered identity. ID is assigned once at registration
// and is the only value trusted for ownership checks.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
