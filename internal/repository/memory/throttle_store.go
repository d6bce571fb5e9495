package memory

import (
	"sync"
	"time"
)

// ThrottleStore хранит блокировки входа в памяти процесса.
// Подходит для одиночного экземпляра и для тестов; в кластере
// используется реализация на Redis.
type ThrottleStore struct {
	mu       sync.Mutex
	lockouts map[string]time.Time
}

// NewThrottleStore создает хранилище блокировок в памяти
func NewThrottleStore() *ThrottleStore {
	return &ThrottleStore{
		lockouts: make(map[string]time.Time),
	}
}

// SetLockout устанавливает блокировку для идентификатора до указанного момента
func (s *ThrottleStore) SetLockout(identifier string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockouts[identifier] = until
	return nil
}

// GetLockout возвращает момент окончания блокировки.
// Нулевое время означает отсутствие блокировки.
func (s *ThrottleStore) GetLockout(identifier string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.lockouts[identifier]
	if !ok {
		return time.Time{}, nil
	}
	return until, nil
}

// Clear снимает блокировку для идентификатора
func (s *ThrottleStore) Clear(identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lockouts, identifier)
	return nil
}
