package session

import "time"

// Session is the server-side record behind an issued token. It exists for
// as long as the token is valid and is deleted on sign-out, which is what
// makes sign-out effective before the token expires.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
