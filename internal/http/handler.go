package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/obratech/contracts-service/internal/model"
	"github.com/obratech/contracts-service/internal/service"
)

type Handler struct {
	contracts *service.ContractService
	templates *service.TemplateService
	log       zerolog.Logger
}

func NewHandler(contracts *service.ContractService, templates *service.TemplateService, log zerolog.Logger) *Handler {
	return &Handler{contracts: contracts, templates: templates, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/contracts", h.listContracts)
	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts/export", h.exportContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.PUT("/contracts/:id", h.updateContract)
	protected.DELETE("/contracts/:id", h.deleteContract)
	protected.POST("/contracts/:id/amendments", h.addAmendment)
	protected.GET("/contracts/:id/document", h.contractDocument)
	protected.GET("/contracts/:id/document/pdf", h.contractDocumentPDF)

	protected.GET("/templates", h.listTemplates)
	protected.POST("/templates", h.createTemplate)
	protected.GET("/templates/:id", h.getTemplate)
	protected.PUT("/templates/:id", h.updateTemplate)
	protected.DELETE("/templates/:id", h.deleteTemplate)
	protected.POST("/templates/:id/preview", h.previewTemplate)
	protected.POST("/templates/:id/document", h.generateTemplateDocument)

	protected.GET("/proposals", h.listProposals)
	protected.POST("/proposals/:id/contract", h.contractFromProposal)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNumberTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMissingVariables):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) sendDocument(c *gin.Context, result *service.DocumentResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func parseContractStatus(raw string) (*model.ContractStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	status := model.ContractStatus(strings.ToLower(raw))
	if !status.Valid() {
		return nil, service.ErrInvalidInput
	}
	return &status, nil
}
