package controllers

import (
	"time"

	"github.com/eventhub-id/eventhub-api/models"
)

// UserResponse is the public view of an account
type UserResponse struct {
	ID             uint       `json:"id"`
	Fullname       string     `json:"fullname"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	IsVerified     bool       `json:"isVerified"`
	ReferralCode   string     `json:"referralCode"`
	ReferralPoints int        `json:"referralPoints"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Fullname:       u.Fullname,
		Email:          u.Email,
		Role:           u.Role,
		IsVerified:     u.IsVerified,
		ReferralCode:   u.ReferralCode,
		ReferralPoints: u.ReferralPoints,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}

// SessionUser is the user summary returned with a session token
type SessionUser struct {
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

// SessionResponse is returned by the login endpoints
type SessionResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

func newSessionResponse(u *models.User, token string) SessionResponse {
	return SessionResponse{
		Token: token,
		User:  SessionUser{Fullname: u.Fullname, Role: u.Role},
	}
}
