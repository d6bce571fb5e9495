package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	"github.com/yourusername/secaware-api/internal/domain/repository"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
	"github.com/yourusername/secaware-api/pkg/auth"
)

// AuthService предоставляет методы для работы с аутентификацией и пользователями
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	throttle   *LoginThrottle
}

// RegisterInput содержит все данные для регистрации
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// LoginResult содержит данные успешного входа
type LoginResult struct {
	User  *entity.User
	Token string
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	throttle *LoginThrottle,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	if throttle == nil {
		return nil, fmt.Errorf("LoginThrottle is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		throttle:   throttle,
	}, nil
}

// Register регистрирует нового пользователя.
// Имя пользователя приводится к нижнему регистру и должно быть уникальным.
func (s *AuthService) Register(input RegisterInput) (*entity.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[AuthService] Ошибка проверки имени %s: %v", username, err)
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s already taken", apperrors.ErrConflict, username)
	}

	user := &entity.User{
		Username:  username,
		Password:  input.Password, // хешируется в BeforeSave
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Role:      "user",
	}
	if err := s.userRepo.Create(user); err != nil {
		log.Printf("[AuthService] Ошибка создания пользователя %s: %v", username, err)
		return nil, err
	}

	log.Printf("[AuthService] Зарегистрирован пользователь %s (ID=%d)", username, user.ID)
	return user, nil
}

// Login выполняет вход пользователя.
// Порядок проверок фиксирован: сначала действующая блокировка,
// затем учетные данные. Любая неудачная попытка, включая попытку
// с несуществующим именем, заново устанавливает блокировку.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	locked, remaining, err := s.throttle.IsLocked(username)
	if err != nil {
		log.Printf("[AuthService] Ошибка проверки блокировки для %s: %v", username, err)
		return nil, err
	}
	if locked {
		// Попытка во время блокировки тоже считается неудачной
		// и продлевает блокировку на полную длительность
		if recErr := s.throttle.RecordFailure(username); recErr != nil {
			log.Printf("[AuthService] Ошибка продления блокировки для %s: %v", username, recErr)
		}
		return nil, fmt.Errorf("%w: try again in %d seconds", apperrors.ErrAccountLocked, remaining)
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.failLogin(username, "user not found")
		}
		log.Printf("[AuthService] Ошибка поиска пользователя %s: %v", username, err)
		return nil, err
	}

	// Запись с поврежденным хешем не дает войти никому
	if !user.HasValidPasswordHash() {
		log.Printf("[AuthService] Некорректный хеш пароля у пользователя %s", username)
		return nil, s.failLogin(username, "malformed password hash")
	}

	if !user.CheckPassword(password) {
		return nil, s.failLogin(username, "wrong password")
	}

	if err := s.throttle.ClearOnSuccess(username); err != nil {
		log.Printf("[AuthService] Ошибка снятия блокировки для %s: %v", username, err)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации токена для %s: %v", username, err)
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// failLogin фиксирует неудачную попытку и возвращает единую ошибку.
// Причина неудачи попадает только в лог, ответ клиенту не различает
// неверный пароль и несуществующее имя.
func (s *AuthService) failLogin(username, reason string) error {
	log.Printf("[AuthService] Неудачный вход %s: %s", username, reason)
	if err := s.throttle.RecordFailure(username); err != nil {
		log.Printf("[AuthService] Ошибка записи неудачной попытки для %s: %v", username, err)
	}
	return apperrors.ErrInvalidCredential
}

// GetUserByID возвращает пользователя по идентификатору
func (s *AuthService) GetUserByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// SetDepartment сохраняет выбор отдела в профиле пользователя
func (s *AuthService) SetDepartment(userID uint, department string) error {
	if !entity.IsValidDepartment(department) {
		return fmt.Errorf("%w: unknown department %q", apperrors.ErrValidation, department)
	}
	return s.userRepo.UpdateDepartment(userID, department)
}
