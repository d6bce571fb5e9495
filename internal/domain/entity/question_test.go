package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestion() *Question {
	return &Question{
		QuestionID: "Q001",
		Text:       "Вы получили письмо с просьбой срочно сменить пароль по ссылке. Ваши действия?",
		Answers: AnswerMap{
			"A": "Перейти по ссылке и сменить пароль",
			"B": "Сообщить в службу безопасности",
			"C": "Переслать письмо коллегам",
			"D": "Удалить письмо и забыть",
		},
		CorrectAnswer:   "B",
		Hint:            "Фишинговые письма давят на срочность",
		PassingScore:    10,
		FailingScore:    -5,
		DifficultyLevel: "Medium",
		Department:      "Networks",
	}
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := sampleQuestion()

	assert.True(t, q.IsCorrect("B"))
	assert.False(t, q.IsCorrect("A"))
	assert.False(t, q.IsCorrect("b"), "Сравнение вариантов чувствительно к регистру")
}

func TestQuestion_IsValidOption(t *testing.T) {
	q := sampleQuestion()

	assert.True(t, q.IsValidOption("A"))
	assert.True(t, q.IsValidOption("D"))
	assert.False(t, q.IsValidOption("E"))
	assert.False(t, q.IsValidOption(""))
}

func TestQuestion_ScoreDelta(t *testing.T) {
	q := sampleQuestion()

	assert.Equal(t, 10, q.ScoreDelta(true), "Верный ответ дает положительные очки")
	assert.Equal(t, -5, q.ScoreDelta(false), "Неверный ответ дает отрицательные очки")
}

func TestQuestion_SequenceNumber(t *testing.T) {
	q := &Question{QuestionID: "Q042"}
	assert.Equal(t, 42, q.SequenceNumber())

	malformed := &Question{QuestionID: "bogus"}
	assert.Equal(t, 0, malformed.SequenceNumber())
}

func TestFormatQuestionID(t *testing.T) {
	assert.Equal(t, "Q001", FormatQuestionID(1))
	assert.Equal(t, "Q042", FormatQuestionID(42))
	// Три знака не обрезают большие номера
	assert.Equal(t, "Q1000", FormatQuestionID(1000))
}

func TestAnswerMap_Value_Scan(t *testing.T) {
	// Arrange
	original := AnswerMap{"A": "один", "B": "два", "C": "три", "D": "четыре"}

	// Act
	val, err := original.Value()
	require.NoError(t, err)

	var restored AnswerMap
	require.NoError(t, restored.Scan(val))

	// Assert
	assert.Equal(t, original, restored)
}

func TestAnswerMap_Scan_Nil(t *testing.T) {
	var m AnswerMap
	require.NoError(t, m.Scan(nil))
	assert.Empty(t, m)
}

func TestAnswerMap_SortedKeys(t *testing.T) {
	m := AnswerMap{"D": "", "B": "", "A": "", "C": ""}
	assert.Equal(t, []string{"A", "B", "C", "D"}, m.SortedKeys())
}
