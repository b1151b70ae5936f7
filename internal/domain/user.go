// Package domain holds the entities owned by the record store.
package domain

// User is a registered account. Users are immutable once created.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}
