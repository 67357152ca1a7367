package dto

import (
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
)

// UserResponse is the public shape of a user record.
type UserResponse struct {
	UserID       string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AvatarURL    string `json:"avatarURL,omitempty"`
	AuthProvider string `json:"authProvider"`
	Verified     bool   `json:"verificado"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Name:         user.Name,
		Email:        user.Email,
		AvatarURL:    user.AvatarURL,
		AuthProvider: string(user.AuthProvider),
		Verified:     user.Verified,
	}
}
