package models

import "time"

// Account identifies the operator signed in to the console.
type Account struct {
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}
