package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// QuestionDraft - черновик вопроса от внешнего генератора.
// Черновик проверяется целиком до записи в банк вопросов.
type QuestionDraft struct {
	Question        string            `json:"question"`
	Answers         map[string]string `json:"answers"`
	CorrectAnswer   string            `json:"correct_answer"`
	Hint            string            `json:"hint"`
	PassingScore    int               `json:"passing_score"`
	FailingScore    int               `json:"failing_score"`
	DifficultyLevel string            `json:"difficulty_level"`
	Department      string            `json:"department"`
}

// draftOptionKeys - обязательные варианты ответа черновика
var draftOptionKeys = []string{"A", "B", "C", "D"}

// draftDifficultyLevels - допустимые уровни сложности черновика
var draftDifficultyLevels = map[string]bool{
	"Low":       true,
	"Medium":    true,
	"High":      true,
	"Very High": true,
}

// Validate проверяет черновик вопроса.
// Любое нарушение структуры считается ошибкой разбора источника.
func (d QuestionDraft) Validate() error {
	if strings.TrimSpace(d.Question) == "" {
		return fmt.Errorf("%w: empty question text", apperrors.ErrParse)
	}
	for _, key := range draftOptionKeys {
		if strings.TrimSpace(d.Answers[key]) == "" {
			return fmt.Errorf("%w: missing answer option %s", apperrors.ErrParse, key)
		}
	}
	if _, ok := d.Answers[d.CorrectAnswer]; !ok {
		return fmt.Errorf("%w: correct answer %q is not among options", apperrors.ErrParse, d.CorrectAnswer)
	}
	if d.PassingScore <= 0 {
		return fmt.Errorf("%w: passing score must be positive", apperrors.ErrParse)
	}
	if d.FailingScore >= 0 {
		return fmt.Errorf("%w: failing score must be negative", apperrors.ErrParse)
	}
	if !draftDifficultyLevels[d.DifficultyLevel] {
		return fmt.Errorf("%w: unknown difficulty level %q", apperrors.ErrParse, d.DifficultyLevel)
	}
	if !entity.IsValidDepartment(d.Department) {
		return fmt.Errorf("%w: unknown department %q", apperrors.ErrParse, d.Department)
	}
	return nil
}

// QuestionSource порождает черновики вопросов для указанного отдела
type QuestionSource interface {
	Generate(ctx context.Context, department string, count int) ([]QuestionDraft, error)
}

// GeminiQuestionSource генерирует вопросы через Gemini API.
// Модель просят вернуть JSON-массив; все, что окружает массив
// в ответе, отбрасывается перед разбором.
type GeminiQuestionSource struct {
	model *genai.GenerativeModel
}

// NewGeminiQuestionSource создает источник вопросов на базе Gemini
func NewGeminiQuestionSource(ctx context.Context, apiKey, modelName string) (*GeminiQuestionSource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for GeminiQuestionSource")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiQuestionSource{model: client.GenerativeModel(modelName)}, nil
}

// Generate запрашивает у модели пакет вопросов для отдела
func (s *GeminiQuestionSource) Generate(ctx context.Context, department string, count int) ([]QuestionDraft, error) {
	if count <= 0 {
		count = 5
	}

	prompt := buildQuestionPrompt(department, count)
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("[GeminiQuestionSource] Ошибка запроса к модели: %v", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGeneration, err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: model returned no content", apperrors.ErrGeneration)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	drafts, err := ParseQuestionDrafts(text.String())
	if err != nil {
		return nil, err
	}
	// Отдел черновика всегда берется из запроса, а не из ответа модели
	for i := range drafts {
		drafts[i].Department = department
	}
	return drafts, nil
}

// ParseQuestionDrafts извлекает JSON-массив черновиков из текста модели.
// Берется фрагмент от первой '[' до последней ']' включительно,
// что отсекает markdown-ограждения и пояснения вокруг массива.
func ParseQuestionDrafts(raw string) ([]QuestionDraft, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array found in model output", apperrors.ErrParse)
	}

	var drafts []QuestionDraft
	if err := json.Unmarshal([]byte(raw[start:end+1]), &drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: model returned an empty array", apperrors.ErrParse)
	}
	return drafts, nil
}

// buildQuestionPrompt собирает задание для модели
func buildQuestionPrompt(department string, count int) string {
	return fmt.Sprintf(`You are a cybersecurity awareness trainer for a National Research and Education Network (NREN) organization.
Generate %d multiple-choice security awareness questions tailored to the daily work of the "%s" department.

Return ONLY a JSON array, no markdown and no commentary. Each element must have exactly these fields:
  "question": the question text,
  "answers": an object with keys "A", "B", "C", "D" mapping to answer texts,
  "correct_answer": one of "A", "B", "C", "D",
  "hint": a short hint shown after a wrong answer,
  "passing_score": a positive integer awarded for a correct answer,
  "failing_score": a negative integer applied for a wrong answer,
  "difficulty_level": one of "Low", "Medium", "High", "Very High".

Questions must cover phishing, password hygiene, social engineering, data handling and incident reporting as relevant to the department.`, count, department)
}
