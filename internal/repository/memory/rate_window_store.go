package memory

import (
	"sync"
	"time"
)

// RateWindowStore хранит отметки времени запросов клиентов в памяти.
// Все операции защищены мьютексом, поэтому параллельные запросы
// одного клиента видят согласованное окно.
type RateWindowStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

// NewRateWindowStore создает хранилище скользящего окна в памяти
func NewRateWindowStore() *RateWindowStore {
	return &RateWindowStore{
		windows: make(map[string][]time.Time),
	}
}

// PruneAndCount удаляет отметки старше cutoff и возвращает число оставшихся
func (s *RateWindowStore) PruneAndCount(clientID string, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := s.windows[clientID]
	kept := window[:0]
	for _, at := range window {
		if !at.Before(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(s.windows, clientID)
	} else {
		s.windows[clientID] = kept
	}
	return len(kept), nil
}

// Record добавляет отметку времени запроса клиента
func (s *RateWindowStore) Record(clientID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[clientID] = append(s.windows[clientID], at)
	return nil
}
