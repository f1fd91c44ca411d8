package routes

import (
	"errors"
	"io"
	"net/http"

	"docrag-backend/internal/ai"
	"docrag-backend/internal/config"
	"docrag-backend/internal/extract"
	"docrag-backend/internal/logger"
	"docrag-backend/services"
	"docrag-backend/utils"

	"github.com/gin-gonic/gin"
)

type urlRequest struct {
	URL string `json:"url" binding:"required"`
}

func SetupIngestRoutes(router *gin.Engine, cfg *config.Config, ingest *services.IngestService) {
	router.POST("/upload", func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			utils.RespondWithBadRequest(c, "A file upload is required", gin.H{"error": err.Error()})
			return
		}

		if fileHeader.Size > cfg.MaxFileSize {
			utils.RespondWithError(c, http.StatusRequestEntityTooLarge,
				"file_too_large",
				"Uploaded file exceeds the size limit",
				gin.H{"max_bytes": cfg.MaxFileSize})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to read uploaded file", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to read uploaded file", nil)
			return
		}

		resp, err := ingest.IngestFile(c.Request.Context(), data, fileHeader.Filename)
		if err != nil {
			respondIngestError(c, err)
			return
		}

		logger.Info("Document ingested", "document", resp.DocumentName, "chunks", resp.ChunkCount)
		c.JSON(http.StatusOK, resp)
	})

	router.POST("/url", func(c *gin.Context) {
		var req urlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "A url field is required", gin.H{"error": err.Error()})
			return
		}

		resp, err := ingest.IngestURL(c.Request.Context(), req.URL)
		if err != nil {
			respondIngestError(c, err)
			return
		}

		logger.Info("URL ingested", "document", resp.DocumentName, "chunks", resp.ChunkCount)
		c.JSON(http.StatusOK, resp)
	})
}

// respondIngestError maps pipeline failures onto the error envelope: client
// mistakes (unknown format) are 4xx, decode and upstream failures keep their
// own codes so callers can tell a bad document from a flaky dependency.
func respondIngestError(c *gin.Context, err error) {
	var unsupported *extract.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		utils.RespondWithError(c, http.StatusBadRequest,
			"unsupported_format",
			"No decoder is registered for this file type",
			gin.H{"extension": unsupported.Extension})
		return
	}

	var decode *extract.DecodeError
	if errors.As(err, &decode) {
		utils.RespondWithError(c, http.StatusUnprocessableEntity,
			"decode_failed",
			"The document could not be decoded",
			gin.H{"format": decode.Format, "error": decode.Err.Error()})
		return
	}

	respondServiceError(c, err)
}

// respondServiceError handles upstream model/service failures shared by the
// ingestion and chat routes.
func respondServiceError(c *gin.Context, err error) {
	var svc *ai.ServiceError
	if errors.As(err, &svc) {
		logger.Error("Upstream service failure", "service", svc.Service, "retryable", svc.Retryable, "error", svc.Err)
		utils.RespondWithError(c, http.StatusBadGateway,
			"external_service_error",
			"An external service failed while processing the request",
			gin.H{"service": svc.Service, "retryable": svc.Retryable})
		return
	}

	logger.Error("Request failed", "error", err)
	utils.RespondWithInternalError(c, "Request processing failed", nil)
}
