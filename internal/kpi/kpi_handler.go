package kpi

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
	l := zap.L().Named("kpi.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kpi.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("kpi request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Assign(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req AssignKpiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http assign kpi validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Assign(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RecordProgress(c *gin.Context) {
	companyID := c.GetString("company_id")
	assignmentID := c.Param("id")

	var req RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http record kpi progress validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordProgress(c.Request.Context(), companyID, assignmentID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ParticipantSummary(c *gin.Context) {
	companyID := c.GetString("company_id")
	participantID := c.Param("id")

	resp, err := h.service.ParticipantSummary(c.Request.Context(), companyID, participantID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
