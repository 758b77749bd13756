package dto

import (
	"github.com/shopspring/decimal"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// CreateUserRequest defines the data required to register a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest defines the login credentials payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the externally visible user shape, including the financial
// totals maintained by the ledger. The password hash never leaves the server.
type UserResponse struct {
	UserID   string          `json:"userID"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Earnings decimal.Decimal `json:"earnings"`
	Spending decimal.Decimal `json:"spending"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		Balance:  u.Balance,
		Earnings: u.Earnings,
		Spending: u.Spending,
	}
}
