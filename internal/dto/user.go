package dto

import "github.com/crewdeck/crewdeck-api/internal/models"

// UserDTO represents a user profile in API responses and chat frames
type UserDTO struct {
	ID             uint64          `json:"id"`
	Username       string          `json:"username"`
	DisplayName    string          `json:"displayName"`
	Email          string          `json:"email"`
	AvatarInitials string          `json:"avatarInitials"`
	AvatarColor    string          `json:"avatarColor"`
	Role           models.UserRole `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		Email:          user.Email,
		AvatarInitials: user.AvatarInitials,
		AvatarColor:    user.AvatarColor,
		Role:           user.Role,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
