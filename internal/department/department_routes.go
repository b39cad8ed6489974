package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceDepartment, domain.ActionRead), handler.GetAll)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceDepartment, domain.ActionRead), handler.GetById)
		departments.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceDepartment, domain.ActionCreate), handler.Create)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceDepartment, domain.ActionUpdate), handler.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceDepartment, domain.ActionDelete), handler.Delete)
	}
}
