package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/secaware-api/internal/domain/entity"
	"github.com/yourusername/secaware-api/internal/domain/repository"
	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// QuizService реализует прохождение квиза: выбор отдела,
// выдачу случайных вопросов и прием ответов с начислением очков.
type QuizService struct {
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	sessionStore repository.SessionStore
	scoreService *ScoreService
}

// AnswerResult содержит итог проверки ответа.
// Правильный вариант и подсказка раскрываются только после
// неверного ответа: вопросы повторяются, и постоянная выдача
// ключа позволила бы собрать ответы на весь банк.
type AnswerResult struct {
	Correct       bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Hint          string `json:"hint,omitempty"`
	ScoreDelta    int    `json:"score_delta"`
	TotalScore    int    `json:"total_score"`
}

// NewQuizService создает новый сервис квиза и возвращает ошибку при проблемах
func NewQuizService(
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	sessionStore repository.SessionStore,
	scoreService *ScoreService,
) (*QuizService, error) {
	if questionRepo == nil {
		return nil, fmt.Errorf("QuestionRepository is required for QuizService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for QuizService")
	}
	if sessionStore == nil {
		return nil, fmt.Errorf("SessionStore is required for QuizService")
	}
	if scoreService == nil {
		return nil, fmt.Errorf("ScoreService is required for QuizService")
	}
	return &QuizService{
		questionRepo: questionRepo,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		scoreService: scoreService,
	}, nil
}

// SelectDepartment фиксирует выбор отдела.
// Выбор сохраняется и в профиле пользователя, и в текущей сессии,
// поэтому он действует сразу и остается умолчанием для следующих сессий.
func (s *QuizService) SelectDepartment(userID uint, department string) error {
	if !entity.IsValidDepartment(department) {
		return fmt.Errorf("%w: unknown department %q", apperrors.ErrValidation, department)
	}
	if err := s.userRepo.UpdateDepartment(userID, department); err != nil {
		return err
	}
	if err := s.sessionStore.SetDepartment(userID, department); err != nil {
		log.Printf("[QuizService] Ошибка записи сессии пользователя %d: %v", userID, err)
		return err
	}
	return nil
}

// ResolveDepartment определяет отдел для текущего запроса.
// Отдел действующей сессии имеет приоритет над профилем:
// смена отдела в профиле другим запросом не меняет уже идущую серию.
func (s *QuizService) ResolveDepartment(userID uint) (string, error) {
	department, err := s.sessionStore.GetDepartment(userID)
	if err == nil {
		return department, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if !user.HasDepartment() {
		return "", fmt.Errorf("%w: department not selected", apperrors.ErrValidation)
	}

	// Профиль задает отдел новой сессии
	if err := s.sessionStore.SetDepartment(userID, user.Department); err != nil {
		log.Printf("[QuizService] Ошибка записи сессии пользователя %d: %v", userID, err)
	}
	return user.Department, nil
}

// DrawQuestion возвращает случайный вопрос отдела пользователя.
// Правильный ответ из выдачи исключается на уровне сериализации сущности.
func (s *QuizService) DrawQuestion(userID uint) (*entity.Question, error) {
	department, err := s.ResolveDepartment(userID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.RandomForDepartment(department)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no questions available for department %q", apperrors.ErrNotFound, department)
		}
		log.Printf("[QuizService] Ошибка выборки вопроса для отдела %s: %v", department, err)
		return nil, err
	}
	return question, nil
}

// SubmitAnswer проверяет ответ и изменяет суммарный счет пользователя.
// Неизвестный вопрос и вариант вне A-D отклоняются без изменения счета.
func (s *QuizService) SubmitAnswer(userID uint, questionID, selectedOption string) (*AnswerResult, error) {
	question, err := s.questionRepo.GetByQuestionID(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown question %q", apperrors.ErrInvalidSubmission, questionID)
		}
		return nil, err
	}
	if !question.IsValidOption(selectedOption) {
		return nil, fmt.Errorf("%w: invalid option %q", apperrors.ErrInvalidSubmission, selectedOption)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	correct := question.IsCorrect(selectedOption)
	delta := question.ScoreDelta(correct)

	department, err := s.ResolveDepartment(userID)
	if err != nil {
		// Ответ без выбранного отдела невозможен через обычный поток,
		// но на прямой запрос отвечаем отделом вопроса
		department = question.Department
	}

	total, err := s.scoreService.ApplyDelta(userID, user.DisplayName(), department, delta)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Correct:    correct,
		ScoreDelta: delta,
		TotalScore: total,
	}
	if !correct {
		result.CorrectAnswer = question.CorrectAnswer
		result.Hint = question.Hint
	}
	return result, nil
}

// Departments возвращает перечень отделов для выбора
func (s *QuizService) Departments() []string {
	return entity.Departments
}
