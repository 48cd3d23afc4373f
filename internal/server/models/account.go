// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user. PasswordHash holds the bcrypt digest; the
// plaintext is never stored.
type Account struct {
	ID           string    `db:"id"`
	UserName     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
