package app

import (
	"database/sql"
	"go-hrm/internal/department"
	"go-hrm/internal/document"
	"go-hrm/internal/employee"
	"go-hrm/internal/kpi"
	"go-hrm/internal/leave"
	"go-hrm/internal/loan"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/notification"
	"go-hrm/internal/preboarding"
	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/training"
	"go-hrm/internal/user"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	kpiRepo := kpi.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	preboardingRepo := preboarding.NewRepository(gormDB)
	trainingRepo := training.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo)
	documentService := document.NewService(db, documentRepo, userRepo, outboxRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb)
	kpiService := kpi.NewService(db, kpiRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo)
	loanService := loan.NewService(db, loanRepo)
	notificationService := notification.NewService(notificationRepo)
	preboardingService := preboarding.NewService(db, preboardingRepo, employeeRepo, userRepo, counterRepo, outboxRepo)
	trainingService := training.NewService(db, trainingRepo, rbacService)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	documentHandler := document.NewHandler(documentService)
	employeeHandler := employee.NewHandler(employeeService)
	kpiHandler := kpi.NewHandler(kpiService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	loanHandler := loan.NewHandlerWithRedis(loanService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	preboardingHandler := preboarding.NewHandlerWithRedis(preboardingService, rdb)
	trainingHandler := training.NewHandler(trainingService)

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler, rbacService)
		document.RegisterRoutes(api, documentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		kpi.RegisterRoutes(api, kpiHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		loan.RegisterRoutes(api, loanHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		preboarding.RegisterRoutes(api, preboardingHandler, rbacService, rdb)
		training.RegisterRoutes(api, trainingHandler, rbacService)
	}

	return nil
}
