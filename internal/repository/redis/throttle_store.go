package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const lockoutKeyPrefix = "auth:lockout:"

// ThrottleStore хранит блокировки входа в Redis.
// Ключ живет ровно до момента окончания блокировки, поэтому
// истекшие записи удаляются самим Redis.
type ThrottleStore struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewThrottleStore создает хранилище блокировок на базе Redis
func NewThrottleStore(client redis.UniversalClient) (*ThrottleStore, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for ThrottleStore")
	}
	return &ThrottleStore{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// SetLockout устанавливает блокировку для идентификатора до указанного момента
func (s *ThrottleStore) SetLockout(identifier string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return s.Clear(identifier)
	}
	return s.client.Set(s.ctx, lockoutKeyPrefix+identifier, until.Unix(), ttl).Err()
}

// GetLockout возвращает момент окончания блокировки.
// Нулевое время означает отсутствие блокировки.
func (s *ThrottleStore) GetLockout(identifier string) (time.Time, error) {
	val, err := s.client.Get(s.ctx, lockoutKeyPrefix+identifier).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid lockout value for %s: %w", identifier, err)
	}
	return time.Unix(unix, 0), nil
}

// Clear снимает блокировку для идентификатора
func (s *ThrottleStore) Clear(identifier string) error {
	return s.client.Del(s.ctx, lockoutKeyPrefix+identifier).Err()
}
