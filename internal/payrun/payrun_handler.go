package payrun

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	return NewHandlerWithRedis(service, nil, logger...)
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payrun.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrun.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

// releaseIdempotencyLock frees the in-flight lock taken by the idempotency
// middleware. Deferred unconditionally so a failed mutation can be retried
// with the same key.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if key := c.GetString("idempotency_lock_key"); key != "" {
		_ = h.rdb.Del(c.Request.Context(), key).Err()
	}
}

// cacheIdempotentResponse stores the successful body so retries with the
// same Idempotency-Key replay it instead of re-running the mutation.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	key := c.GetString("idempotency_cache_key")
	if key == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = h.rdb.Set(c.Request.Context(), key, payload, idempotencyCacheTTL).Err()
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("pay run request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")

	var req CreatePayRunRequest
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

func (h *Handler) GetEntries(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	id := c.Param("id")

	resp, err := h.service.GetEntries(c.Request.Context(), organizationID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Process(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	var req ProcessPayRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Process(c.Request.Context(), organizationID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.Approve(c.Request.Context(), organizationID, actorID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	organizationID := c.GetString("organization_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.MarkPaid(c.Request.Context(), organizationID, actorID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), organizationID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	id := c.Param("id")
	entryID := c.Param("entryId")

	pdf, err := h.service.GetPayslip(c.Request.Context(), organizationID, id, entryID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=payslip-"+entryID+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
