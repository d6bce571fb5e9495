package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/secaware-api/internal/handler/dto"
	"github.com/yourusername/secaware-api/internal/service"
)

// QuizHandler обрабатывает прохождение квиза и таблицу лидеров
type QuizHandler struct {
	quizService  *service.QuizService
	scoreService *service.ScoreService
}

// NewQuizHandler создает новый обработчик квиза
func NewQuizHandler(quizService *service.QuizService, scoreService *service.ScoreService) *QuizHandler {
	return &QuizHandler{
		quizService:  quizService,
		scoreService: scoreService,
	}
}

// SelectDepartmentRequest представляет запрос на выбор отдела
type SelectDepartmentRequest struct {
	Department string `json:"department" binding:"required"`
}

// SubmitAnswerRequest представляет запрос с ответом на вопрос
type SubmitAnswerRequest struct {
	QuestionID     string `json:"question_id" binding:"required"`
	SelectedOption string `json:"selected_option" binding:"required"`
}

// Departments возвращает перечень отделов
func (h *QuizHandler) Departments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"departments": h.quizService.Departments()})
}

// SelectDepartment фиксирует выбор отдела пользователя
func (h *QuizHandler) SelectDepartment(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SelectDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.SelectDepartment(userID, req.Department); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[QuizHandler] Пользователь %d выбрал отдел %q", userID, req.Department)
	c.JSON(http.StatusOK, gin.H{"department": req.Department})
}

// Question выдает случайный вопрос отдела пользователя
func (h *QuizHandler) Question(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	question, err := h.quizService.DrawQuestion(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionDTO(question))
}

// SubmitAnswer принимает ответ на вопрос
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quizService.SubmitAnswer(userID, req.QuestionID, req.SelectedOption)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Score возвращает суммарный счет текущего пользователя
func (h *QuizHandler) Score(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	total, err := h.scoreService.GetUserScore(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_score": total})
}

// Leaderboard возвращает таблицу лидеров
func (h *QuizHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.scoreService.Leaderboard(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": dto.NewLeaderboardDTO(entries)})
}

// ExportLeaderboard выгружает таблицу лидеров в файл XLSX
func (h *QuizHandler) ExportLeaderboard(c *gin.Context) {
	entries, err := h.scoreService.Leaderboard(100)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard_%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leaderboard"
	f.SetSheetName("Sheet1", sheetName)

	// StreamWriter пишет строки последовательно без раздувания памяти
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuizHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Rank", "Name", "Department", "Total Score"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, e := range entries {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)
		row := []interface{}{i + 1, e.Name, e.Department, e.TotalScore}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Ошибка завершения StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize Excel file"})
		return
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Ошибка отправки файла: %v", err)
	}
}
