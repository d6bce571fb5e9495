package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

const sessionKeyPrefix = "quiz:session:"

// SessionStore хранит выбор отдела в рамках текущей квиз-сессии.
// Запись живет ограниченное время и не влияет на профиль пользователя.
type SessionStore struct {
	client redis.UniversalClient
	ctx    context.Context
	ttl    time.Duration
}

// NewSessionStore создает хранилище квиз-сессий на базе Redis
func NewSessionStore(client redis.UniversalClient, ttl time.Duration) (*SessionStore, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for SessionStore")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionStore{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}, nil
}

// SetDepartment запоминает отдел для сессии пользователя
func (s *SessionStore) SetDepartment(userID uint, department string) error {
	key := fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
	return s.client.Set(s.ctx, key, department, s.ttl).Err()
}

// GetDepartment возвращает отдел текущей сессии.
// Если сессия отсутствует, возвращает apperrors.ErrNotFound.
func (s *SessionStore) GetDepartment(userID uint) (string, error) {
	key := fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
	val, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Clear завершает квиз-сессию пользователя
func (s *SessionStore) Clear(userID uint) error {
	key := fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
	return s.client.Del(s.ctx, key).Err()
}
