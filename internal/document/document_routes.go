package document

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
	documents := r.Group("/document-requests")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceDocument, domain.ActionRead), handler.GetAll)
		documents.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceDocument, domain.ActionRead), handler.GetById)
		documents.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceDocument, domain.ActionCreate), handler.Create)
		documents.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, domain.ResourceDocument, domain.ActionUpdate), handler.UpdateStatus)
	}
}
