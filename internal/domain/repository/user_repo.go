package repository

import (
	"github.com/yourusername/secaware-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	// UpdateDepartment сохраняет выбранный департамент в записи пользователя
	UpdateDepartment(userID uint, department string) error
	// UpdatePassword хеширует и сохраняет новый пароль, минуя хук BeforeSave
	UpdatePassword(userID uint, newPassword string) error
}
