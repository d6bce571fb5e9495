package repository

// SessionStore хранит выбор отдела в рамках одной квиз-сессии.
// Выбор действует только на текущую серию вопросов и переживает
// перезапуск сервера лишь в реализациях с внешним хранилищем.
type SessionStore interface {
	// SetDepartment запоминает отдел для сессии пользователя
	SetDepartment(userID uint, department string) error

	// GetDepartment возвращает отдел текущей сессии.
	// Возвращает ErrNotFound, если сессия не начата.
	GetDepartment(userID uint) (string, error)

	// Clear завершает квиз-сессию пользователя
	Clear(userID uint) error
}
