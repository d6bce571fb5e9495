package dto

import "github.com/yourusername/secaware-api/internal/domain/entity"

// UserDTO представляет пользователя в ответах API
type UserDTO struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role"`
}

// NewUserDTO строит DTO пользователя из сущности
func NewUserDTO(u *entity.User) *UserDTO {
	return &UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.DisplayName(),
		Email:      u.Email,
		Department: u.Department,
		Role:       u.Role,
	}
}
