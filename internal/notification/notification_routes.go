package notification

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
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceNotification, domain.ActionRead), handler.List)
		notifications.POST("/:id/read", middleware.RBACAuthorize(rbacService, domain.ResourceNotification, domain.ActionUpdate), handler.MarkRead)
	}
}
