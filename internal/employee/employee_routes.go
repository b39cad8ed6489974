package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead), handler.GetAll)
		employees.GET("/options", middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead), handler.GetOptions)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead), handler.GetById)
		employees.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionCreate), handler.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionUpdate), handler.Update)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionDelete), handler.Delete)
	}
}
