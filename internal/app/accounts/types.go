package accounts

import "time"

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileInput changes username, email or password. The current
// password is always required; empty fields keep their current value.
type UpdateProfileInput struct {
	CurrentPassword string `json:"current_password"`
	Username        string `json:"username,omitempty"`
	Email           string `json:"email,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

type Account struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session pairs an account with a fresh bearer token.
type Session struct {
	Account Account `json:"account"`
	Token   string  `json:"token"`
}
