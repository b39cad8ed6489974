package training

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
	training := r.Group("/training")
	training.Use(middleware.AuthMiddleware())
	{
		training.GET("/sessions", middleware.RBACAuthorize(rbacService, domain.ResourceTraining, domain.ActionRead), handler.GetSessions)
		training.POST("/sessions", middleware.RBACAuthorize(rbacService, domain.ResourceTraining, domain.ActionCreate), handler.CreateSession)
		training.GET("/sessions/:id/waitlist", middleware.RBACAuthorize(rbacService, domain.ResourceTraining, domain.ActionRead), handler.Waitlist)
		training.POST("/sessions/:id/waitlist", middleware.RBACAuthorize(rbacService, domain.ResourceTraining, domain.ActionCreate), handler.Join)
		// Ownership and the admin override are checked in the service, so the
		// gate here only requires read access.
		training.DELETE("/waitlist/:entryId", middleware.RBACAuthorize(rbacService, domain.ResourceTraining, domain.ActionRead), handler.CancelWaitlist)
	}
}
