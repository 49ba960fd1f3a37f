package grant

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
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

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")

	var req CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), organizationID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	organizationID := c.GetString("organization_id")

	resp, err := h.service.GetAll(c.Request.Context(), organizationID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), organizationID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	var req UpdateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), organizationID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), organizationID, actorID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Check(c *gin.Context) {
	organizationID := c.GetString("organization_id")

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Check(c.Request.Context(), organizationID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Permissions serves the static catalog consumed by the grant editor.
func (h *Handler) Permissions(c *gin.Context) {
	response.Success(c, http.StatusOK, access.Catalog(), nil)
}
