package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	"github.com/yourusername/secaware-api/internal/domain/repository"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// QuestionIngestService принимает черновики вопросов от внешнего
// источника и записывает новые в банк. Повторная подача того же
// пакета не создает дубликатов: совпадение текста вопроса означает,
// что вопрос уже в банке.
type QuestionIngestService struct {
	questionRepo repository.QuestionRepository
	source       QuestionSource
}

// IngestResult содержит итог приема пакета черновиков
type IngestResult struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	IDs      []string `json:"ids,omitempty"`
}

// NewQuestionIngestService создает новый сервис приема вопросов.
// Источник может быть nil, тогда доступен только прием готовых черновиков.
func NewQuestionIngestService(questionRepo repository.QuestionRepository, source QuestionSource) (*QuestionIngestService, error) {
	if questionRepo == nil {
		return nil, fmt.Errorf("QuestionRepository is required for QuestionIngestService")
	}
	return &QuestionIngestService{
		questionRepo: questionRepo,
		source:       source,
	}, nil
}

// GenerateAndIngest запрашивает пакет вопросов у источника и принимает его
func (s *QuestionIngestService) GenerateAndIngest(ctx context.Context, department string, count int) (*IngestResult, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: question source is not configured", apperrors.ErrGeneration)
	}
	if !entity.IsValidDepartment(department) {
		return nil, fmt.Errorf("%w: unknown department %q", apperrors.ErrValidation, department)
	}

	drafts, err := s.source.Generate(ctx, department, count)
	if err != nil {
		return nil, err
	}
	return s.Ingest(drafts)
}

// Ingest проверяет черновики и записывает новые вопросы в банк.
// Пакет проверяется целиком до первой записи, поэтому черновик
// с нарушенной структурой отклоняет весь пакет.
func (s *QuestionIngestService) Ingest(drafts []QuestionDraft) (*IngestResult, error) {
	for i := range drafts {
		if err := drafts[i].Validate(); err != nil {
			return nil, fmt.Errorf("draft %d: %w", i+1, err)
		}
	}

	result := &IngestResult{}
	for i := range drafts {
		draft := &drafts[i]

		existing, err := s.questionRepo.GetByText(draft.Question)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return result, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		maxSeq, err := s.questionRepo.MaxSequenceNumber()
		if err != nil {
			return result, err
		}

		question := &entity.Question{
			QuestionID:      entity.FormatQuestionID(maxSeq + 1),
			Text:            draft.Question,
			Answers:         entity.AnswerMap(draft.Answers),
			CorrectAnswer:   draft.CorrectAnswer,
			Hint:            draft.Hint,
			PassingScore:    draft.PassingScore,
			FailingScore:    draft.FailingScore,
			DifficultyLevel: draft.DifficultyLevel,
			Department:      draft.Department,
		}
		if err := s.questionRepo.Create(question); err != nil {
			log.Printf("[QuestionIngestService] Ошибка записи вопроса %s: %v", question.QuestionID, err)
			return result, err
		}

		result.Inserted++
		result.IDs = append(result.IDs, question.QuestionID)
	}

	log.Printf("[QuestionIngestService] Принят пакет: добавлено %d, пропущено %d", result.Inserted, result.Skipped)
	return result, nil
}
