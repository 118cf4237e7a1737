// Package dto provides data transfer objects for the user domain.
package dto

import (
	"helpdesk/internal/domain/user"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// UserDTO represents the data transfer object for users. The password
// hash never leaves the domain layer.
type UserDTO struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ToUserDTO converts a domain user to DTO.
func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
		Role:        u.Role().String(),
		IsActive:    u.IsActive(),
		CreatedAt:   u.CreatedAt().Format(timeLayout),
		UpdatedAt:   u.UpdatedAt().Format(timeLayout),
	}
}

// ToUserDTOs converts a slice of domain users to DTOs.
func ToUserDTOs(users []*user.User) []*UserDTO {
	dtos := make([]*UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}
