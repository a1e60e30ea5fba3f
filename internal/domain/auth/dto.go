package auth

import "time"

type RegisterRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Role            string `json:"role"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// PortalRegisterRequest signs up a customer account and additionally
// creates the matching customer record keyed by the same email.
type PortalRegisterRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Phone           string `json:"phone" binding:"required,max=20"`
	Address         string `json:"address" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
