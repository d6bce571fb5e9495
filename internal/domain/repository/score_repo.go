package repository

import (
	"github.com/yourusername/secaware-api/internal/domain/entity"
)

// ScoreRepository определяет методы для работы с агрегированными счетами пользователей
type ScoreRepository interface {
	// ApplyDelta атомарно применяет дельту очков к записи пользователя:
	// создаёт запись с total_score = delta, если её ещё нет, иначе прибавляет delta.
	// Чтение-изменение-запись выполняется в одной транзакции с блокировкой строки,
	// чтобы конкурентные отправки одного пользователя не теряли дельты.
	// Возвращает итоговый счёт после применения.
	ApplyDelta(userID uint, name, department string, delta int) (int, error)
	// GetByUserID возвращает запись счёта пользователя
	GetByUserID(userID uint) (*entity.ScoreRecord, error)
	// Leaderboard возвращает строки лидерборда, отсортированные по убыванию счёта.
	// Порядок при равных счетах стабилен (по времени создания записи).
	Leaderboard(limit int) ([]entity.LeaderboardEntry, error)
}
