package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/obratech/contracts-service/internal/http/middleware"
	"github.com/obratech/contracts-service/internal/model"
)

func (h *Handler) listProposals(c *gin.Context) {
	var status *model.ProposalStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		parsed := model.ProposalStatus(strings.ToLower(raw))
		switch parsed {
		case model.ProposalStatusOpen, model.ProposalStatusAccepted, model.ProposalStatusContracted, model.ProposalStatusRejected:
			status = &parsed
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
	}

	proposals, err := h.contracts.ListProposals(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func (h *Handler) contractFromProposal(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	contract, err := h.contracts.CreateFromProposal(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContractResponse(*contract))
}
