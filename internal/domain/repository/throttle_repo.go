package repository

import (
	"time"
)

// AttemptStore хранит состояние блокировки входа по идентификатору (username).
// Контейнер состояния внедряется в LoginThrottle при создании: для
// одного процесса достаточно реализации в памяти, при горизонтальном
// масштабировании подставляется реализация на внешнем разделяемом хранилище.
type AttemptStore interface {
	// SetLockout запоминает момент истечения блокировки для идентификатора
	SetLockout(identifier string, until time.Time) error
	// GetLockout возвращает момент истечения блокировки.
	// Нулевое время означает, что блокировки нет.
	GetLockout(identifier string) (time.Time, error)
	// Clear сбрасывает состояние для идентификатора
	Clear(identifier string) error
}

// RateWindowStore хранит скользящее окно отметок времени запросов по идентификатору клиента
type RateWindowStore interface {
	// PruneAndCount удаляет отметки старше cutoff и возвращает число оставшихся
	PruneAndCount(clientID string, cutoff time.Time) (int, error)
	// Record добавляет отметку времени запроса в окно клиента
	Record(clientID string, at time.Time) error
}
