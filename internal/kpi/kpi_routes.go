package kpi

import (
	"go-hrm/internal/domain"
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	kpis := r.Group("/kpi")
	kpis.Use(middleware.AuthMiddleware())
	{
		kpis.POST("/assignments", middleware.RBACAuthorize(rbacService, domain.ResourceKpi, domain.ActionCreate), handler.Assign)
		kpis.PUT("/assignments/:id/progress", middleware.RBACAuthorize(rbacService, domain.ResourceKpi, domain.ActionUpdate), handler.RecordProgress)
		kpis.GET("/participants/:id/summary", middleware.RBACAuthorize(rbacService, domain.ResourceKpi, domain.ActionRead), handler.ParticipantSummary)
	}
}
