package calculation

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("calculation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calculation.handler")
	}
	return &Handler{service: service, logger: l}
}

// Calculate serves the calculator contract: {success,data,employee} on
// success, {error,details?} otherwise. The UI depends on this exact shape.
func (h *Handler) Calculate(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "employee_id is required",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), organizationID, actorID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("calculation failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)

		body := gin.H{"error": httpErr.Message}
		if httpErr.Details != nil {
			body["details"] = httpErr.Details
		}
		c.JSON(httpErr.Status, body)
		return
	}

	c.JSON(http.StatusOK, resp)
}
