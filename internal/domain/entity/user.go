package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User представляет пользователя в системе
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password   string `gorm:"size:100;not null" json:"-"`
	FirstName  string `gorm:"size:50;not null;default:''" json:"first_name"`
	LastName   string `gorm:"size:50;not null;default:''" json:"last_name"`
	Email      string `gorm:"size:100;not null;default:''" json:"email,omitempty"`
	Department string `gorm:"size:50;not null;default:''" json:"department"`
	Role       string `gorm:"size:20;not null;default:'user'" json:"-"` // "user" или "admin"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// DisplayName возвращает имя для лидерборда ("Имя Фамилия", либо username как fallback)
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// HasDepartment возвращает true, если пользователю назначен департамент
func (u *User) HasDepartment() bool {
	return strings.TrimSpace(u.Department) != ""
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для username=%s: %v", u.Username, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу.
// bcrypt.CompareHashAndPassword выполняет сравнение за постоянное время.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasValidPasswordHash проверяет, что сохранённый хеш имеет форму bcrypt.
// Повреждённый хеш означает, что проверить пароль невозможно в принципе.
func (u *User) HasValidPasswordHash() bool {
	return strings.HasPrefix(u.Password, "$2a$") ||
		strings.HasPrefix(u.Password, "$2b$") ||
		strings.HasPrefix(u.Password, "$2y$")
}
