package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/agristack/internal/domain/advice"
	"github.com/yanqian/agristack/internal/domain/quota"
)

const healthMessage = "AgriStack advice API działa (grounding + JSON w tekście)"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	adviceSvc advice.Service
	quota     quota.Guard
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(adviceSvc advice.Service, guard quota.Guard, logger *slog.Logger) *Handler {
	return &Handler{
		adviceSvc: adviceSvc,
		quota:     guard,
		logger:    logger.With("component", "http.handler"),
	}
}

// Health reports liveness unconditionally.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": healthMessage,
	})
}

// Advise validates the query, charges the daily quota and returns the model's advice.
func (h *Handler) Advise(c *gin.Context) {
	var req advice.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_request", errMessage(err), err))
		return
	}
	if err := req.Validate(); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.quota.Admit(ctx); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	resp, err := h.adviceSvc.Advise(ctx, req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}
