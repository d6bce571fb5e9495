package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/secaware-api/internal/domain/repository"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

const (
	// DefaultRateWindow - ширина скользящего окна ограничителя запросов
	DefaultRateWindow = 60 * time.Second

	// DefaultRateMaxRequests - допустимое число запросов внутри окна
	DefaultRateMaxRequests = 5
)

// RateLimiter ограничивает частоту запросов клиента скользящим окном.
// Перед проверкой из окна удаляются отметки старше его ширины,
// затем сравнивается число оставшихся с порогом. Отклоненный
// запрос не записывается и не продлевает окно.
type RateLimiter struct {
	store       repository.RateWindowStore
	window      time.Duration
	maxRequests int

	// now подменяется в тестах
	now func() time.Time
}

// NewRateLimiter создает новый ограничитель частоты запросов
func NewRateLimiter(store repository.RateWindowStore, window time.Duration, maxRequests int) (*RateLimiter, error) {
	if store == nil {
		return nil, fmt.Errorf("RateWindowStore is required for RateLimiter")
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	if maxRequests <= 0 {
		maxRequests = DefaultRateMaxRequests
	}
	return &RateLimiter{
		store:       store,
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
	}, nil
}

// CheckAndRecord проверяет запрос клиента и при допуске записывает его.
// Возвращает apperrors.ErrRateLimited, если число запросов в окне
// уже превысило бы порог. Запрос ровно на границе окна считается
// входящим в окно.
func (l *RateLimiter) CheckAndRecord(clientID string) error {
	now := l.now()
	cutoff := now.Add(-l.window)

	count, err := l.store.PruneAndCount(clientID, cutoff)
	if err != nil {
		log.Printf("[RateLimiter] Ошибка подсчета окна для %s: %v", clientID, err)
		return err
	}
	if count+1 > l.maxRequests {
		return fmt.Errorf("%w: client %s exceeded %d requests per %s",
			apperrors.ErrRateLimited, clientID, l.maxRequests, l.window)
	}
	if err := l.store.Record(clientID, now); err != nil {
		log.Printf("[RateLimiter] Ошибка записи запроса для %s: %v", clientID, err)
		return err
	}
	return nil
}
