package routes

import (
	"net/http"

	"docrag-backend/internal/config"
	"docrag-backend/models"
	"docrag-backend/services"
	"docrag-backend/utils"

	"github.com/gin-gonic/gin"
)

func SetupChatRoutes(router *gin.Engine, cfg *config.Config, rag *services.RAGService) {
	router.POST("/chat", func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "A message field is required", gin.H{"error": err.Error()})
			return
		}

		model := req.Model
		if model == "" {
			model = cfg.GenerationModel
		}

		answer, err := rag.Answer(c.Request.Context(), req.Message, model, req.UseRAG, req.DocumentName)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ChatResponse{Response: answer})
	})
}
