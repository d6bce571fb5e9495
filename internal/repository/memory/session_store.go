package memory

import (
	"sync"

	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// SessionStore хранит выбор отдела квиз-сессии в памяти процесса
type SessionStore struct {
	mu          sync.Mutex
	departments map[uint]string
}

// NewSessionStore создает хранилище квиз-сессий в памяти
func NewSessionStore() *SessionStore {
	return &SessionStore{
		departments: make(map[uint]string),
	}
}

// SetDepartment запоминает отдел для сессии пользователя
func (s *SessionStore) SetDepartment(userID uint, department string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[userID] = department
	return nil
}

// GetDepartment возвращает отдел текущей сессии.
// Если сессия отсутствует, возвращает apperrors.ErrNotFound.
func (s *SessionStore) GetDepartment(userID uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	department, ok := s.departments[userID]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return department, nil
}

// Clear завершает квиз-сессию пользователя
func (s *SessionStore) Clear(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.departments, userID)
	return nil
}
