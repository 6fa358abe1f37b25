package entity

import "time"

// User is a registered account. PasswordHash holds the bcrypt digest and
// never leaves the service.
type User struct {
	ID           int64
	Email        string
	Name         string
	Age          int
	PasswordHash string
	CreatedAt    time.Time
}
