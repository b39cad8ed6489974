package preboarding

import (
	"net/http"

	"go-hrm/internal/middleware"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("preboarding.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("preboarding.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("preboarding request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateChecklist(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create checklist validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateChecklist(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	companyID := c.GetString("company_id")
	targetID := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SubmitItem(c *gin.Context) {
	companyID := c.GetString("company_id")
	checklistID := c.Param("id")
	itemID := c.Param("itemId")

	resp, err := h.service.SubmitItem(c.Request.Context(), companyID, checklistID, itemID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApproveItem(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	companyID := c.GetString("company_id")
	actorID := getActorID(c)
	checklistID := c.Param("id")
	itemID := c.Param("itemId")

	resp, err := h.service.ApproveItem(c.Request.Context(), companyID, actorID, checklistID, itemID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RejectItem(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	companyID := c.GetString("company_id")
	actorID := getActorID(c)
	checklistID := c.Param("id")
	itemID := c.Param("itemId")

	var req RejectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http reject checklist item validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RejectItem(c.Request.Context(), companyID, actorID, checklistID, itemID, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

// Convert completes the idempotency handshake: the success payload is cached
// so a replayed Idempotency-Key is served the original conversion, and the
// lock is freed so a retry is not stuck behind the lock TTL.
func (h *Handler) Convert(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	companyID := c.GetString("company_id")
	actorID := getActorID(c)
	checklistID := c.Param("id")

	resp, err := h.service.ConvertToEmployee(c.Request.Context(), companyID, actorID, checklistID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}
