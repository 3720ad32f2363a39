package domain

import "time"

type User struct {
	UserID        string    `json:"id"`
	Email         string    `json:"email"`
	EmailVerified time.Time `json:"email_verified"`
	LastLogin     time.Time `json:"last_login"`
	CreatedAt     time.Time `json:"created"`
}
