package dto

import "github.com/yourusername/secaware-api/internal/domain/entity"

// QuestionDTO представляет вопрос, выдаваемый клиенту.
// Правильный ответ в выдачу не входит.
type QuestionDTO struct {
	QuestionID      string            `json:"question_id"`     // Идентификатор вида Q001
	Question        string            `json:"question"`        // Текст вопроса
	Answers         map[string]string `json:"answers"`         // Варианты ответа A-D
	Hint            string            `json:"hint"`            // Подсказка к вопросу
	DifficultyLevel string            `json:"difficulty_level"` // Уровень сложности
	Department      string            `json:"department"`       // Отдел
}

// NewQuestionDTO строит DTO вопроса из сущности
func NewQuestionDTO(q *entity.Question) *QuestionDTO {
	return &QuestionDTO{
		QuestionID:      q.QuestionID,
		Question:        q.Text,
		Answers:         map[string]string(q.Answers),
		Hint:            q.Hint,
		DifficultyLevel: q.DifficultyLevel,
		Department:      q.Department,
	}
}

// LeaderboardEntryDTO представляет одну строку таблицы лидеров
type LeaderboardEntryDTO struct {
	Rank       int    `json:"rank"`        // Место в рейтинге
	Name       string `json:"name"`        // Отображаемое имя
	Department string `json:"department"`  // Отдел
	TotalScore int    `json:"total_score"` // Суммарный счет
}

// NewLeaderboardDTO строит таблицу лидеров с местами
func NewLeaderboardDTO(entries []entity.LeaderboardEntry) []LeaderboardEntryDTO {
	result := make([]LeaderboardEntryDTO, 0, len(entries))
	for i, e := range entries {
		result = append(result, LeaderboardEntryDTO{
			Rank:       i + 1,
			Name:       e.Name,
			Department: e.Department,
			TotalScore: e.TotalScore,
		})
	}
	return result
}
