package expatriate

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Calculate(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), organizationID, actorID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}
