package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create сохраняет новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByQuestionID возвращает вопрос по внешнему идентификатору ("Q001")
func (r *QuestionRepo) GetByQuestionID(questionID string) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Where("question_id = ?", questionID).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// RandomForDepartment равномерно выбирает один случайный вопрос департамента.
// ORDER BY RANDOM() равномерен при любом размере выборки и приемлем для
// банка вопросов такого объёма.
func (r *QuestionRepo) RandomForDepartment(department string) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Where("department = ?", department).
		Order("RANDOM()").
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByText ищет вопрос по точному совпадению текста.
// Используется для идемпотентной ингестии: повторная загрузка того же
// контента не создаёт дубликатов.
func (r *QuestionRepo) GetByText(text string) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Where("text = ?", text).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// MaxSequenceNumber возвращает наибольший числовой суффикс question_id, 0 для пустого банка.
// ВНИМАНИЕ: схема "max+1" не безопасна при конкурентной ингестии - два
// одновременных вызова могут вычислить одинаковый следующий идентификатор.
// Известное ограничение ингестии, не исправляется здесь молча; уникальный
// индекс по question_id превращает гонку в ошибку вставки.
func (r *QuestionRepo) MaxSequenceNumber() (int, error) {
	var question entity.Question
	// Сортировка сначала по длине: "Q1000" длиннее и потому больше "Q999"
	err := r.db.Order("length(question_id) DESC, question_id DESC").First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return question.SequenceNumber(), nil
}
