package postgres

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// ScoreRepo реализует repository.ScoreRepository
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий счетов
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// ApplyDelta атомарно применяет дельту очков к агрегированной записи пользователя.
// Чтение-изменение-запись выполняется в одной транзакции с блокировкой строки
// (SELECT ... FOR UPDATE): конкурентные отправки одного пользователя
// сериализуются и ни одна дельта не теряется.
func (r *ScoreRepo) ApplyDelta(userID uint, name, department string, delta int) (int, error) {
	var total int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var record entity.ScoreRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&record).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Первый ответ пользователя - создаём запись со счётом равным дельте
			record = entity.ScoreRecord{
				UserID:     userID,
				Name:       name,
				Department: department,
				TotalScore: delta,
				AnsweredAt: time.Now(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			total = record.TotalScore
			return nil
		}
		if err != nil {
			return err
		}

		record.TotalScore += delta
		record.AnsweredAt = time.Now()
		if department != "" {
			record.Department = department
		}
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		total = record.TotalScore
		return nil
	})
	if err != nil {
		log.Printf("[ScoreRepo] Ошибка транзакции при применении дельты для пользователя ID=%d: %v", userID, err)
		return 0, apperrors.ErrStorage
	}

	return total, nil
}

// GetByUserID возвращает запись счёта пользователя
func (r *ScoreRepo) GetByUserID(userID uint) (*entity.ScoreRecord, error) {
	var record entity.ScoreRecord
	err := r.db.Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Leaderboard возвращает строки лидерборда по убыванию счёта.
// Вторичная сортировка по id сохраняет стабильный порядок при равных счетах
// (порядок появления записей).
func (r *ScoreRepo) Leaderboard(limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	var entries []entity.LeaderboardEntry
	err := r.db.Model(&entity.ScoreRecord{}).
		Select("name", "department", "total_score").
		Order("total_score DESC, id ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
