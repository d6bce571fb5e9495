package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/secaware-api/internal/domain/repository"
)

// DefaultLockoutDuration - длительность блокировки после неудачной попытки входа
const DefaultLockoutDuration = 15 * time.Minute

// LoginThrottle отслеживает неудачные попытки входа и временно
// блокирует учетную запись. Каждая неудачная попытка заново
// устанавливает блокировку на полную длительность, в том числе
// попытка во время уже действующей блокировки.
type LoginThrottle struct {
	store    repository.AttemptStore
	duration time.Duration

	// now подменяется в тестах
	now func() time.Time
}

// NewLoginThrottle создает новый ограничитель попыток входа
func NewLoginThrottle(store repository.AttemptStore, duration time.Duration) (*LoginThrottle, error) {
	if store == nil {
		return nil, fmt.Errorf("AttemptStore is required for LoginThrottle")
	}
	if duration <= 0 {
		duration = DefaultLockoutDuration
	}
	return &LoginThrottle{
		store:    store,
		duration: duration,
		now:      time.Now,
	}, nil
}

// RecordFailure фиксирует неудачную попытку входа.
// Блокировка всегда продлевается до now + duration, так что
// повторные попытки во время блокировки сдвигают ее окончание.
func (t *LoginThrottle) RecordFailure(identifier string) error {
	until := t.now().Add(t.duration)
	if err := t.store.SetLockout(identifier, until); err != nil {
		log.Printf("[LoginThrottle] Ошибка записи блокировки для %s: %v", identifier, err)
		return err
	}
	return nil
}

// IsLocked проверяет, заблокирована ли учетная запись.
// Возвращает признак блокировки и оставшееся время в секундах.
func (t *LoginThrottle) IsLocked(identifier string) (bool, int, error) {
	until, err := t.store.GetLockout(identifier)
	if err != nil {
		return false, 0, err
	}
	if until.IsZero() {
		return false, 0, nil
	}
	remaining := until.Sub(t.now())
	if remaining <= 0 {
		// Истекшая блокировка равносильна ее отсутствию
		return false, 0, nil
	}
	seconds := int(remaining.Seconds())
	if remaining > time.Duration(seconds)*time.Second {
		seconds++
	}
	return true, seconds, nil
}

// ClearOnSuccess снимает блокировку после успешного входа
func (t *LoginThrottle) ClearOnSuccess(identifier string) error {
	return t.store.Clear(identifier)
}
