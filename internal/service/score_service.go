package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	"github.com/yourusername/secaware-api/internal/domain/repository"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// leaderboardCacheKey - ключ кеша таблицы лидеров в Redis
const leaderboardCacheKey = "leaderboard:top"

// leaderboardCacheTTL ограничивает устаревание кеша между инвалидациями
const leaderboardCacheTTL = 30 * time.Second

// ScoreService ведет суммарный счет пользователей и таблицу лидеров.
// На пользователя существует ровно одна запись счета, которая
// создается при первом ответе и далее только изменяется.
type ScoreService struct {
	scoreRepo repository.ScoreRepository
	cacheRepo repository.CacheRepository
}

// NewScoreService создает новый сервис счета и возвращает ошибку при проблемах
func NewScoreService(scoreRepo repository.ScoreRepository, cacheRepo repository.CacheRepository) (*ScoreService, error) {
	if scoreRepo == nil {
		return nil, fmt.Errorf("ScoreRepository is required for ScoreService")
	}
	if cacheRepo == nil {
		return nil, fmt.Errorf("CacheRepository is required for ScoreService")
	}
	return &ScoreService{
		scoreRepo: scoreRepo,
		cacheRepo: cacheRepo,
	}, nil
}

// ApplyDelta изменяет суммарный счет пользователя и возвращает новое значение.
// Создание и изменение записи выполняются в одной транзакции репозитория.
func (s *ScoreService) ApplyDelta(userID uint, name, department string, delta int) (int, error) {
	total, err := s.scoreRepo.ApplyDelta(userID, name, department, delta)
	if err != nil {
		return 0, err
	}

	// Таблица лидеров изменилась, кеш больше не актуален
	if cacheErr := s.cacheRepo.Delete(leaderboardCacheKey); cacheErr != nil {
		log.Printf("[ScoreService] Ошибка инвалидации кеша таблицы лидеров: %v", cacheErr)
	}
	return total, nil
}

// GetUserScore возвращает суммарный счет пользователя.
// Пользователь без единого ответа имеет нулевой счет.
func (s *ScoreService) GetUserScore(userID uint) (int, error) {
	record, err := s.scoreRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.TotalScore, nil
}

// Leaderboard возвращает таблицу лидеров по убыванию счета.
// Результат кешируется в Redis до следующего изменения счета.
func (s *ScoreService) Leaderboard(limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	// Кешируется всегда полная сотня, запрошенный срез берется из нее
	var cached []entity.LeaderboardEntry
	if err := s.cacheRepo.GetJSON(leaderboardCacheKey, &cached); err == nil {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[ScoreService] Ошибка чтения кеша таблицы лидеров: %v", err)
	}

	entries, err := s.scoreRepo.Leaderboard(100)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheRepo.SetJSON(leaderboardCacheKey, entries, leaderboardCacheTTL); cacheErr != nil {
		log.Printf("[ScoreService] Ошибка записи кеша таблицы лидеров: %v", cacheErr)
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
