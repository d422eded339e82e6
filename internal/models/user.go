package models

import "time"

// DefaultAvatar is the asset path stored for users who sign up
// without uploading an image.
const DefaultAvatar = "/images/Avatar.png"

// User is the system of record for one account. The ID never changes;
// the whole record is replaced in the users collection on every
// mutation to its owned tasks or statuses.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"` // stored verbatim, local demo data only
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Tasks     []Task    `json:"tasks"`
	Statuses  []Status  `json:"status"`
}

// SessionRef is what the current-session slot persists: a pointer to
// the logged-in user, resolved against the users collection on read.
// Logout writes an explicit null in its place.
type SessionRef struct {
	UserID string `json:"userId"`
}
