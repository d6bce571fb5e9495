package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

func TestScoreService_ApplyDelta_InvalidatesCache(t *testing.T) {
	// Arrange
	scoreRepo := new(MockScoreRepository)
	cacheRepo := new(MockCacheRepository)
	scoreRepo.On("ApplyDelta", uint(1), "Иван Петров", "Networks", 10).Return(10, nil)
	cacheRepo.On("Delete", leaderboardCacheKey).Return(nil)

	svc, err := NewScoreService(scoreRepo, cacheRepo)
	require.NoError(t, err)

	// Act
	total, err := svc.ApplyDelta(1, "Иван Петров", "Networks", 10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	cacheRepo.AssertCalled(t, "Delete", leaderboardCacheKey)
}

func TestScoreService_GetUserScore_NoRecordMeansZero(t *testing.T) {
	// Arrange: пользователь еще не отвечал ни на один вопрос
	scoreRepo := new(MockScoreRepository)
	scoreRepo.On("GetByUserID", uint(7)).Return(nil, apperrors.ErrNotFound)

	svc, err := NewScoreService(scoreRepo, new(MockCacheRepository))
	require.NoError(t, err)

	// Act
	total, err := svc.GetUserScore(7)

	// Assert
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestScoreService_Leaderboard_CacheMiss(t *testing.T) {
	// Arrange
	scoreRepo := new(MockScoreRepository)
	cacheRepo := new(MockCacheRepository)
	entries := []entity.LeaderboardEntry{
		{Name: "Иван Петров", Department: "Networks", TotalScore: 50},
		{Name: "Мария Сидорова", Department: "Internal Audit", TotalScore: 30},
	}

	cacheRepo.On("GetJSON", leaderboardCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	scoreRepo.On("Leaderboard", 100).Return(entries, nil)
	cacheRepo.On("SetJSON", leaderboardCacheKey, entries, leaderboardCacheTTL).Return(nil)

	svc, err := NewScoreService(scoreRepo, cacheRepo)
	require.NoError(t, err)

	// Act
	got, err := svc.Leaderboard(10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	scoreRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}

func TestScoreService_Leaderboard_LimitSlices(t *testing.T) {
	// Arrange
	scoreRepo := new(MockScoreRepository)
	cacheRepo := new(MockCacheRepository)
	entries := []entity.LeaderboardEntry{
		{Name: "a", TotalScore: 3},
		{Name: "b", TotalScore: 2},
		{Name: "c", TotalScore: 1},
	}
	cacheRepo.On("GetJSON", leaderboardCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	scoreRepo.On("Leaderboard", 100).Return(entries, nil)
	cacheRepo.On("SetJSON", leaderboardCacheKey, entries, leaderboardCacheTTL).Return(nil)

	svc, err := NewScoreService(scoreRepo, cacheRepo)
	require.NoError(t, err)

	// Act
	got, err := svc.Leaderboard(2)

	// Assert: запрошенный срез меньше закешированной сотни
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
}
