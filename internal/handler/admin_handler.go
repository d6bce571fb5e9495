package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/secaware-api/internal/service"
)

// AdminHandler обрабатывает административные операции с банком вопросов
type AdminHandler struct {
	ingestService *service.QuestionIngestService
}

// NewAdminHandler создает новый административный обработчик
func NewAdminHandler(ingestService *service.QuestionIngestService) *AdminHandler {
	return &AdminHandler{
		ingestService: ingestService,
	}
}

// GenerateQuestionsRequest представляет запрос на генерацию вопросов
type GenerateQuestionsRequest struct {
	Department string `json:"department" binding:"required"`
	Count      int    `json:"count" binding:"omitempty,min=1,max=20"`
}

// IngestQuestionsRequest представляет запрос на прием готовых черновиков
type IngestQuestionsRequest struct {
	Questions []service.QuestionDraft `json:"questions" binding:"required,min=1"`
}

// GenerateQuestions запрашивает пакет вопросов у генератора и пополняет банк
func (h *AdminHandler) GenerateQuestions(c *gin.Context) {
	var req GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ingestService.GenerateAndIngest(c.Request.Context(), req.Department, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[AdminHandler] Генерация для отдела %q: добавлено %d, пропущено %d",
		req.Department, result.Inserted, result.Skipped)
	c.JSON(http.StatusOK, result)
}

// IngestQuestions принимает готовые черновики вопросов
func (h *AdminHandler) IngestQuestions(c *gin.Context) {
	var req IngestQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ingestService.Ingest(req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
