package training

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("training.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.handler")
	}
	return &Handler{service: service, logger: l}
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
	h.logger.Warn("training request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateSession(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create session validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateSession(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetSessions(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetSessions(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Waitlist(c *gin.Context) {
	companyID := c.GetString("company_id")
	sessionID := c.Param("id")

	resp, err := h.service.Waitlist(c.Request.Context(), companyID, sessionID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Join(c *gin.Context) {
	companyID := c.GetString("company_id")
	sessionID := c.Param("id")

	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http join waitlist validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Join(c.Request.Context(), companyID, sessionID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CancelWaitlist(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)
	entryID := c.Param("entryId")

	if err := h.service.CancelWaitlist(c.Request.Context(), companyID, actorID, entryID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true}, nil)
}
