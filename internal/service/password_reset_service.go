package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/secaware-api/internal/domain/repository"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// resetTokenKeyPrefix - префикс ключей токенов сброса пароля в кеше
const resetTokenKeyPrefix = "auth:reset:"

// resetTokenTTL - время жизни токена сброса пароля
const resetTokenTTL = 15 * time.Minute

// PasswordResetService выдает одноразовые токены сброса пароля.
// Запросы ограничиваются скользящим окном по клиенту, а токены
// живут в кеше до использования или истечения срока.
type PasswordResetService struct {
	userRepo  repository.UserRepository
	cacheRepo repository.CacheRepository
	email     EmailService
	limiter   *RateLimiter
}

// NewPasswordResetService создает новый сервис сброса пароля
func NewPasswordResetService(
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	email EmailService,
	limiter *RateLimiter,
) (*PasswordResetService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for PasswordResetService")
	}
	if cacheRepo == nil {
		return nil, fmt.Errorf("CacheRepository is required for PasswordResetService")
	}
	if email == nil {
		return nil, fmt.Errorf("EmailService is required for PasswordResetService")
	}
	if limiter == nil {
		return nil, fmt.Errorf("RateLimiter is required for PasswordResetService")
	}
	return &PasswordResetService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		email:     email,
		limiter:   limiter,
	}, nil
}

// RequestReset выдает токен сброса и отправляет его на почту пользователя.
// Ответ не различает существующее и несуществующее имя, чтобы
// по этому запросу нельзя было перебирать учетные записи.
func (s *PasswordResetService) RequestReset(ctx context.Context, username, clientID string) error {
	if err := s.limiter.CheckAndRecord(clientID); err != nil {
		return err
	}

	username = strings.ToLower(strings.TrimSpace(username))
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[PasswordResetService] Запрос сброса для неизвестного имени %s", username)
			return nil
		}
		return err
	}
	if user.Email == "" {
		log.Printf("[PasswordResetService] У пользователя %s нет почты, сброс невозможен", username)
		return nil
	}

	token := uuid.New().String()
	if err := s.cacheRepo.Set(resetTokenKeyPrefix+token, user.ID, resetTokenTTL); err != nil {
		log.Printf("[PasswordResetService] Ошибка сохранения токена для %s: %v", username, err)
		return err
	}

	if err := s.email.SendPasswordReset(ctx, user.Email, token, token); err != nil {
		log.Printf("[PasswordResetService] Ошибка отправки письма для %s: %v", username, err)
		return err
	}

	log.Printf("[PasswordResetService] Выдан токен сброса для %s", username)
	return nil
}

// ConfirmReset меняет пароль по действующему токену.
// Токен одноразовый: удаляется до смены пароля, поэтому повторное
// использование невозможно даже при ошибке записи нового пароля.
func (s *PasswordResetService) ConfirmReset(token, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: new password is required", apperrors.ErrValidation)
	}

	key := resetTokenKeyPrefix + strings.TrimSpace(token)
	val, err := s.cacheRepo.Get(key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", apperrors.ErrUnauthorized)
		}
		return err
	}

	var userID uint
	if _, scanErr := fmt.Sscanf(val, "%d", &userID); scanErr != nil {
		return fmt.Errorf("%w: malformed reset token payload", apperrors.ErrUnauthorized)
	}

	if err := s.cacheRepo.Delete(key); err != nil {
		log.Printf("[PasswordResetService] Ошибка удаления токена: %v", err)
	}

	if err := s.userRepo.UpdatePassword(userID, newPassword); err != nil {
		return err
	}

	log.Printf("[PasswordResetService] Пароль пользователя %d изменен по токену", userID)
	return nil
}
