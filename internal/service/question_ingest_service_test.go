package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

func validDraft() QuestionDraft {
	return QuestionDraft{
		Question: "Коллега просит ваш пароль, чтобы срочно выгрузить отчет. Ваши действия?",
		Answers: map[string]string{
			"A": "Продиктовать пароль",
			"B": "Отказать и предложить оформить доступ",
			"C": "Отправить пароль в мессенджере",
			"D": "Записать пароль на стикере",
		},
		CorrectAnswer:   "B",
		Hint:            "Пароли не передаются никому и никогда",
		PassingScore:    10,
		FailingScore:    -5,
		DifficultyLevel: "Low",
		Department:      "Finance Operations",
	}
}

func TestQuestionDraft_Validate(t *testing.T) {
	assert.NoError(t, validDraft().Validate())

	missing := validDraft()
	delete(missing.Answers, "C")
	assert.ErrorIs(t, missing.Validate(), apperrors.ErrParse)

	badCorrect := validDraft()
	badCorrect.CorrectAnswer = "E"
	assert.ErrorIs(t, badCorrect.Validate(), apperrors.ErrParse)

	badPassing := validDraft()
	badPassing.PassingScore = 0
	assert.ErrorIs(t, badPassing.Validate(), apperrors.ErrParse)

	badFailing := validDraft()
	badFailing.FailingScore = 5
	assert.ErrorIs(t, badFailing.Validate(), apperrors.ErrParse, "Очки за неверный ответ должны быть отрицательными")

	badDifficulty := validDraft()
	badDifficulty.DifficultyLevel = "Impossible"
	assert.ErrorIs(t, badDifficulty.Validate(), apperrors.ErrParse)

	badDepartment := validDraft()
	badDepartment.Department = "Typing Pool"
	assert.ErrorIs(t, badDepartment.Validate(), apperrors.ErrParse, "Вопрос для неизвестного отдела никогда не будет выдан")

	noDepartment := validDraft()
	noDepartment.Department = ""
	assert.ErrorIs(t, noDepartment.Validate(), apperrors.ErrParse)
}

func TestParseQuestionDrafts_ExtractsArray(t *testing.T) {
	// Модель часто оборачивает массив в markdown и пояснения
	raw := "Here are your questions:\n```json\n" +
		`[{"question":"q1","answers":{"A":"a","B":"b","C":"c","D":"d"},"correct_answer":"A","hint":"h","passing_score":10,"failing_score":-5,"difficulty_level":"Low"}]` +
		"\n```\nLet me know if you need more."

	drafts, err := ParseQuestionDrafts(raw)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "q1", drafts[0].Question)
	assert.Equal(t, "A", drafts[0].CorrectAnswer)
}

func TestParseQuestionDrafts_NoArray(t *testing.T) {
	_, err := ParseQuestionDrafts("I cannot generate questions right now.")
	assert.ErrorIs(t, err, apperrors.ErrParse)
}

func TestParseQuestionDrafts_MalformedJSON(t *testing.T) {
	_, err := ParseQuestionDrafts(`[{"question": }]`)
	assert.ErrorIs(t, err, apperrors.ErrParse)
}

func TestQuestionIngestService_Ingest_AssignsSequentialIDs(t *testing.T) {
	// Arrange
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("GetByText", mock.Anything).Return(nil, apperrors.ErrNotFound)
	questionRepo.On("MaxSequenceNumber").Return(17, nil).Once()
	questionRepo.On("MaxSequenceNumber").Return(18, nil).Once()
	questionRepo.On("Create", mock.AnythingOfType("*entity.Question")).Return(nil)

	svc, err := NewQuestionIngestService(questionRepo, nil)
	require.NoError(t, err)

	second := validDraft()
	second.Question = "Другой вопрос про резервные копии"

	// Act
	result, err := svc.Ingest([]QuestionDraft{validDraft(), second})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Zero(t, result.Skipped)
	assert.Equal(t, []string{"Q018", "Q019"}, result.IDs)
	questionRepo.AssertExpectations(t)
}

func TestQuestionIngestService_Ingest_SkipsDuplicateText(t *testing.T) {
	// Arrange: вопрос с таким текстом уже в банке
	questionRepo := new(MockQuestionRepository)
	draft := validDraft()
	questionRepo.On("GetByText", draft.Question).Return(&entity.Question{ID: 3, QuestionID: "Q003", Text: draft.Question}, nil)

	svc, err := NewQuestionIngestService(questionRepo, nil)
	require.NoError(t, err)

	// Act: повторная подача того же пакета
	result, err := svc.Ingest([]QuestionDraft{draft})

	// Assert
	require.NoError(t, err)
	assert.Zero(t, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	questionRepo.AssertNotCalled(t, "Create")
}

func TestQuestionIngestService_Ingest_RejectsWholeBatchOnInvalidDraft(t *testing.T) {
	// Arrange: второй черновик сломан
	questionRepo := new(MockQuestionRepository)
	bad := validDraft()
	bad.CorrectAnswer = "Z"

	svc, err := NewQuestionIngestService(questionRepo, nil)
	require.NoError(t, err)

	// Act
	result, err := svc.Ingest([]QuestionDraft{validDraft(), bad})

	// Assert: ни один вопрос пакета не записан
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrParse)
	questionRepo.AssertNotCalled(t, "Create")
}

func TestQuestionIngestService_GenerateAndIngest_SourceNotConfigured(t *testing.T) {
	svc, err := NewQuestionIngestService(new(MockQuestionRepository), nil)
	require.NoError(t, err)

	_, err = svc.GenerateAndIngest(context.Background(), "Networks", 5)
	assert.ErrorIs(t, err, apperrors.ErrGeneration)
}

func TestQuestionIngestService_GenerateAndIngest_UnknownDepartment(t *testing.T) {
	source := new(MockQuestionSource)
	svc, err := NewQuestionIngestService(new(MockQuestionRepository), source)
	require.NoError(t, err)

	_, err = svc.GenerateAndIngest(context.Background(), "Nonexistent", 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	source.AssertNotCalled(t, "Generate")
}

func TestQuestionIngestService_GenerateAndIngest_Success(t *testing.T) {
	// Arrange
	questionRepo := new(MockQuestionRepository)
	source := new(MockQuestionSource)

	draft := validDraft()
	draft.Department = "Networks"
	source.On("Generate", mock.Anything, "Networks", 3).Return([]QuestionDraft{draft}, nil)
	questionRepo.On("GetByText", draft.Question).Return(nil, apperrors.ErrNotFound)
	questionRepo.On("MaxSequenceNumber").Return(0, nil)
	questionRepo.On("Create", mock.AnythingOfType("*entity.Question")).Return(nil)

	svc, err := NewQuestionIngestService(questionRepo, source)
	require.NoError(t, err)

	// Act
	result, err := svc.GenerateAndIngest(context.Background(), "Networks", 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, []string{"Q001"}, result.IDs)
	source.AssertExpectations(t)
}
