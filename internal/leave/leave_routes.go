package leave

import (
	"go-hrm/internal/domain"
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetAll)
		leaves.GET("/calendar", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.Calendar)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetById)
		leaves.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCreate), handler.Create)
		// Decisions are single-shot, so they sit behind the idempotency guard.
		leaves.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove),
			middleware.Idempotency(rdb),
			handler.Approve,
		)
		leaves.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove),
			middleware.Idempotency(rdb),
			handler.Reject,
		)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionUpdate), handler.Cancel)
	}
}
