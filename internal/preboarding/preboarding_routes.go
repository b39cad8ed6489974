package preboarding

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
	checklists := r.Group("/preboarding/checklists")
	checklists.Use(middleware.AuthMiddleware())
	{
		checklists.GET("", middleware.RBACAuthorize(rbacService, domain.ResourcePreboarding, domain.ActionRead), handler.GetAll)
		checklists.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourcePreboarding, domain.ActionRead), handler.GetById)
		checklists.POST("", middleware.RBACAuthorize(rbacService, domain.ResourcePreboarding, domain.ActionCreate), handler.CreateChecklist)
		checklists.POST("/:id/items/:itemId/submit", middleware.RBACAuthorize(rbacService, domain.ResourcePreboarding, domain.ActionUpdate), handler.SubmitItem)
		// The idempotency guard runs after the permission gate so a denied
		// request never takes the lock it would have no handler to release.
		checklists.POST("/:id/items/:itemId/approve",
			middleware.RBACAuthorize(rbacService, domain.ResourcePreboarding, domain.ActionApprove),
			middleware.Idempotency(rdb),
			handler.ApproveItem,
		)
		checklists.POST("/:id/items/:itemId/reject",
			middleware.RBACAuthorize(rbacService, domain.ResourcePreboarding, domain.ActionApprove),
			middleware.Idempotency(rdb),
			handler.RejectItem,
		)
		// Conversion sits behind the idempotency guard so a retried request
		// never races its original past the unique constraint.
		checklists.POST("/:id/convert",
			middleware.RBACAuthorize(rbacService, domain.ResourcePreboarding, domain.ActionManage),
			middleware.Idempotency(rdb),
			handler.Convert,
		)
	}
}
