package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const rateWindowKeyPrefix = "auth:ratewindow:"

// rateWindowKeyTTL ограничивает жизнь всего упорядоченного множества,
// чтобы неактивные клиенты не копили ключи.
const rateWindowKeyTTL = 10 * time.Minute

// RateWindowStore хранит отметки времени запросов клиента в
// упорядоченном множестве Redis. Счетом элемента служит время
// запроса в наносекундах, что позволяет отсекать устаревшие
// отметки одной командой ZREMRANGEBYSCORE.
type RateWindowStore struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewRateWindowStore создает хранилище скользящего окна на базе Redis
func NewRateWindowStore(client redis.UniversalClient) (*RateWindowStore, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for RateWindowStore")
	}
	return &RateWindowStore{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// PruneAndCount удаляет отметки старше cutoff и возвращает число оставшихся
func (s *RateWindowStore) PruneAndCount(clientID string, cutoff time.Time) (int, error) {
	key := rateWindowKeyPrefix + clientID
	maxScore := strconv.FormatInt(cutoff.UnixNano(), 10)
	if err := s.client.ZRemRangeByScore(s.ctx, key, "-inf", "("+maxScore).Err(); err != nil {
		return 0, err
	}
	count, err := s.client.ZCard(s.ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Record добавляет отметку времени запроса клиента
func (s *RateWindowStore) Record(clientID string, at time.Time) error {
	key := rateWindowKeyPrefix + clientID
	member := fmt.Sprintf("%d:%s", at.UnixNano(), uuid.New().String())
	pipe := s.client.TxPipeline()
	pipe.ZAdd(s.ctx, key, &redis.Z{Score: float64(at.UnixNano()), Member: member})
	pipe.Expire(s.ctx, key, rateWindowKeyTTL)
	_, err := pipe.Exec(s.ctx)
	return err
}
