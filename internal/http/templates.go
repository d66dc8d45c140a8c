package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/obratech/contracts-service/internal/http/middleware"
	"github.com/obratech/contracts-service/internal/model"
	"github.com/obratech/contracts-service/internal/service"
)

type templateVariableRequest struct {
	Name     string `json:"name" binding:"required"`
	Label    string `json:"label" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
	Required bool   `json:"required"`
}

type templateRequest struct {
	Name      string                    `json:"name" binding:"required"`
	Category  string                    `json:"category"`
	Body      string                    `json:"body"`
	Variables []templateVariableRequest `json:"variables"`
	Active    bool                      `json:"active"`
}

type templateValuesRequest struct {
	Values map[string]string `json:"values"`
}

func (h *Handler) listTemplates(c *gin.Context) {
	onlyActive := strings.EqualFold(c.Query("active"), "true")
	templates, err := h.templates.List(c.Request.Context(), onlyActive)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *Handler) getTemplate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	template, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *Handler) createTemplate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := h.templates.Create(c.Request.Context(), templateInputFromRequest(req, principal))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *Handler) updateTemplate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := h.templates.Update(c.Request.Context(), id, templateInputFromRequest(req, principal))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.templates.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) previewTemplate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req templateValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rendered, err := h.templates.Preview(c.Request.Context(), id, req.Values)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rendered": rendered})
}

func (h *Handler) generateTemplateDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req templateValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.templates.GenerateDocument(c.Request.Context(), id, req.Values)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendDocument(c, result)
}

func templateInputFromRequest(req templateRequest, principal model.Principal) service.TemplateInput {
	vars := make([]model.TemplateVariable, 0, len(req.Variables))
	for _, v := range req.Variables {
		vars = append(vars, model.TemplateVariable{
			Name:     strings.TrimSpace(v.Name),
			Label:    strings.TrimSpace(v.Label),
			Kind:     model.VariableKind(strings.ToLower(strings.TrimSpace(v.Kind))),
			Required: v.Required,
		})
	}
	return service.TemplateInput{
		Name:      req.Name,
		Category:  req.Category,
		Body:      req.Body,
		Variables: vars,
		Active:    req.Active,
		Principal: principal,
	}
}
