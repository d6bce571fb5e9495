package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AnswerMap - пользовательский тип для работы с JSONB.
// Хранит варианты ответа как ключ варианта ("A", "B", ...) -> текст варианта.
type AnswerMap map[string]string

// Scan реализует интерфейс sql.Scanner для AnswerMap
// Используется GORM для чтения JSONB данных из базы
func (a *AnswerMap) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*a = AnswerMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*a = AnswerMap{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для AnswerMap
// Используется GORM для записи AnswerMap в JSONB в базе
func (a AnswerMap) Value() (driver.Value, error) {
	if a == nil || len(a) == 0 {
		return []byte("{}"), nil // Возвращаем пустой JSON объект вместо null
	}
	return json.Marshal(a)
}

// SortedKeys возвращает ключи вариантов в стабильном порядке ("A", "B", "C", "D")
func (a AnswerMap) SortedKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	// Вариантов максимум несколько, простая сортировка вставками достаточна
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// Question представляет вопрос банка вопросов по информационной безопасности.
// Записи создаются только при ингестии и далее неизменяемы: квиз читает их как есть.
type Question struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	QuestionID      string    `gorm:"size:10;not null;uniqueIndex" json:"question_id"` // Внешний идентификатор вида "Q001"
	Text            string    `gorm:"size:500;not null" json:"text"`
	Answers         AnswerMap `gorm:"type:jsonb;not null" json:"answers"`
	CorrectAnswer   string    `gorm:"size:5;not null" json:"-"` // Скрыто от клиента
	Hint            string    `gorm:"size:255;not null;default:''" json:"hint,omitempty"`
	PassingScore    int       `gorm:"not null" json:"passing_score"` // Положительная дельта за верный ответ
	FailingScore    int       `gorm:"not null" json:"failing_score"` // Отрицательная дельта за неверный ответ
	DifficultyLevel string    `gorm:"size:10;not null" json:"difficulty_level"` // Low, Medium, High, Very High
	Department      string    `gorm:"size:50;not null;index" json:"department"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "question_bank"
}

// IsCorrect проверяет, является ли выбранный ключ варианта правильным
func (q *Question) IsCorrect(selectedKey string) bool {
	return selectedKey == q.CorrectAnswer
}

// IsValidOption проверяет, что ключ варианта присутствует в наборе ответов
func (q *Question) IsValidOption(selectedKey string) bool {
	_, ok := q.Answers[selectedKey]
	return ok
}

// ScoreDelta возвращает дельту очков за ответ: passing_score за верный,
// failing_score за неверный. Других значений не бывает.
func (q *Question) ScoreDelta(isCorrect bool) int {
	if isCorrect {
		return q.PassingScore
	}
	return q.FailingScore
}

// SequenceNumber извлекает числовой суффикс внешнего идентификатора ("Q017" -> 17).
// Возвращает 0 для идентификатора неожиданной формы.
func (q *Question) SequenceNumber() int {
	if len(q.QuestionID) < 2 || !strings.HasPrefix(q.QuestionID, "Q") {
		return 0
	}
	n, err := strconv.Atoi(q.QuestionID[1:])
	if err != nil {
		return 0
	}
	return n
}

// FormatQuestionID формирует внешний идентификатор по порядковому номеру ("Q001")
func FormatQuestionID(n int) string {
	return fmt.Sprintf("Q%03d", n)
}
