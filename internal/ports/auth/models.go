package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
