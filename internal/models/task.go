package models

import "time"

// Task is a unit of work owned by a single user. Status holds the
// display name of a user-defined status, not its id; nothing validates
// the reference at write time, and an orphaned name simply renders with
// a fallback color downstream.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsFavorite  bool      `json:"isFavorite"`
}
