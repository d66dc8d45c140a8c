package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/obratech/contracts-service/internal/http/middleware"
	"github.com/obratech/contracts-service/internal/model"
	"github.com/obratech/contracts-service/internal/service"
)

type contractRequest struct {
	Number      string  `json:"number" binding:"required"`
	ClientName  string  `json:"clientName" binding:"required"`
	ProjectName string  `json:"projectName" binding:"required"`
	BaseValue   float64 `json:"baseValue"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     string  `json:"endDate" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	Type        string  `json:"type"`
	Notes       string  `json:"notes"`
}

type amendmentRequest struct {
	Kind            string   `json:"kind" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	AdditionalValue *float64 `json:"additionalValue"`
	NewEndDate      string   `json:"newEndDate"`
	Justification   string   `json:"justification"`
}

// contractResponse decorates the stored record with the derived figures so
// clients never recompute them.
type contractResponse struct {
	model.Contract
	EffectiveValue   float64 `json:"effectiveValue"`
	EffectiveEndDate string  `json:"effectiveEndDate"`
}

func toContractResponse(c model.Contract) contractResponse {
	return contractResponse{
		Contract:         c,
		EffectiveValue:   c.EffectiveValue(),
		EffectiveEndDate: c.EffectiveEndDate().Format("2006-01-02"),
	}
}

func toContractResponses(contracts []model.Contract) []contractResponse {
	responses := make([]contractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, toContractResponse(c))
	}
	return responses
}

func (h *Handler) listContracts(c *gin.Context) {
	status, err := parseContractStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	contracts, err := h.contracts.List(c.Request.Context(), status, c.Query("type"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractResponses(contracts))
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	contract, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractResponse(*contract))
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := contractInputFromRequest(req, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	contract, err := h.contracts.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContractResponse(*contract))
}

func (h *Handler) updateContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := contractInputFromRequest(req, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	contract, err := h.contracts.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractResponse(*contract))
}

func (h *Handler) deleteContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.contracts.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addAmendment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req amendmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.AmendmentInput{
		ContractID:      id,
		Kind:            model.AmendmentKind(strings.ToLower(strings.TrimSpace(req.Kind))),
		Description:     req.Description,
		AdditionalValue: req.AdditionalValue,
		Justification:   req.Justification,
		Principal:       principal,
	}
	if strings.TrimSpace(req.NewEndDate) != "" {
		newEnd, err := parseDate(req.NewEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid newEndDate"})
			return
		}
		input.NewEndDate = &newEnd
	}

	contract, err := h.contracts.AddAmendment(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContractResponse(*contract))
}

func (h *Handler) contractDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.contracts.HTMLDocument(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendDocument(c, result)
}

func (h *Handler) contractDocumentPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.contracts.PDFDocument(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendDocument(c, result)
}

func (h *Handler) exportContracts(c *gin.Context) {
	result, err := h.contracts.ExportWorkbook(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendDocument(c, result)
}

func contractInputFromRequest(req contractRequest, principal model.Principal) (service.ContractInput, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return service.ContractInput{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return service.ContractInput{}, err
	}
	return service.ContractInput{
		Number:      req.Number,
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		BaseValue:   req.BaseValue,
		StartDate:   start,
		EndDate:     end,
		Status:      model.ContractStatus(strings.ToLower(strings.TrimSpace(req.Status))),
		Type:        req.Type,
		Notes:       req.Notes,
		Principal:   principal,
	}, nil
}
