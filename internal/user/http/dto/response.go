package dto

import (
	"time"

	authDomain "github.com/allisson/passvault/internal/auth/domain"
	userDomain "github.com/allisson/passvault/internal/user/domain"
)

// RegisterResponse is returned with 201 after registration.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// LoginResponse is returned with 200 after a successful login.
type LoginResponse struct {
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapUserToRegisterResponse builds the registration response.
func MapUserToRegisterResponse(user *userDomain.User) RegisterResponse {
	return RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID.String(),
	}
}

// MapSessionToLoginResponse builds the login response.
func MapSessionToLoginResponse(session *authDomain.Session) LoginResponse {
	return LoginResponse{
		UserID:    session.UserID.String(),
		Message:   "Login successful",
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}
}
