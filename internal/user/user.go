package user

import "time"

// User is the profile record kept for every account. It never carries the
// plain password; PasswordHash is only populated by the local provider.
type User struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
