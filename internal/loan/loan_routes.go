package loan

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
	loans := r.Group("/loans")
	loans.Use(middleware.AuthMiddleware())
	{
		loans.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLoan, domain.ActionRead), handler.GetAll)
		loans.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLoan, domain.ActionRead), handler.GetById)
		loans.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceLoan, domain.ActionCreate), handler.Apply)
		// Decisions are single-shot, so they sit behind the idempotency guard.
		loans.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, domain.ResourceLoan, domain.ActionApprove),
			middleware.Idempotency(rdb),
			handler.Approve,
		)
		loans.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, domain.ResourceLoan, domain.ActionApprove),
			middleware.Idempotency(rdb),
			handler.Reject,
		)
	}
}
