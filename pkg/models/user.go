package models

import "time"

// User owns a rating keyspace. The application currently runs with a single
// seeded user (ID 1); the ID stays part of every store call so real accounts
// only need to supply real IDs.
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
