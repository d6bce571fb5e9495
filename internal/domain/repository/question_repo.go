package repository

import (
	"github.com/yourusername/secaware-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с банком вопросов
type QuestionRepository interface {
	// GetByQuestionID возвращает вопрос по внешнему идентификатору ("Q001")
	GetByQuestionID(questionID string) (*entity.Question, error)
	// RandomForDepartment равномерно выбирает один случайный вопрос департамента.
	// Возвращает apperrors.ErrNotFound, если вопросов для департамента нет.
	RandomForDepartment(department string) (*entity.Question, error)
	// GetByText ищет вопрос по точному совпадению текста (дедупликация при ингестии)
	GetByText(text string) (*entity.Question, error)
	// MaxSequenceNumber возвращает наибольший числовой суффикс question_id ("Q017" -> 17),
	// 0 для пустого банка
	MaxSequenceNumber() (int, error)
	// Create сохраняет новый вопрос
	Create(question *entity.Question) error
}
