package app

import (
	"database/sql"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/approval"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/auth"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/directory"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/division"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/leaverequest"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/leavetype"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/messaging/kafka"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/middleware"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/rbac"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/report"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/shared/counter"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// accessPolicies is the full grant table. Roles inherit downward through
// accessGroupings, so each row lists only what the role adds on top of
// the one below it.
var accessPolicies = []rbac.Policy{
	{Role: directory.RoleEmployee, Resource: "leave_request", Action: "read"},
	{Role: directory.RoleEmployee, Resource: "leave_request", Action: "write"},
	{Role: directory.RoleEmployee, Resource: "leave_type", Action: "read"},
	{Role: directory.RoleEmployee, Resource: "division", Action: "read"},

	{Role: directory.RoleDivisionHead, Resource: "approval", Action: "read"},
	{Role: directory.RoleDivisionHead, Resource: "approval", Action: "decide"},

	{Role: directory.RoleHRD, Resource: "user", Action: "read"},
	{Role: directory.RoleHRD, Resource: "user", Action: "manage"},
	{Role: directory.RoleHRD, Resource: "division", Action: "manage"},
	{Role: directory.RoleHRD, Resource: "leave_type", Action: "manage"},
	{Role: directory.RoleHRD, Resource: "report", Action: "read"},
}

var accessGroupings = []rbac.Grouping{
	{Child: directory.RoleDivisionHead, Parent: directory.RoleEmployee},
	{Child: directory.RoleHRD, Parent: directory.RoleDivisionHead},
	{Child: directory.RoleDirector, Parent: directory.RoleHRD},
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	approvalRepo := approval.NewRepository(db)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	directoryRepo := directory.NewRepository(gormDB)
	divisionRepo := division.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	reportRepo := report.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService(accessPolicies, accessGroupings)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	directoryService := directory.NewService(directoryRepo, directory.FlowFromEnv())
	divisionService := division.NewService(db, divisionRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo)
	userService := user.NewService(userRepo, counterRepo)
	approvalService := approval.NewService(db, approvalRepo, directoryService, outboxRepo, rdb)
	leaveRequestService := leaverequest.NewService(db, leaveRequestRepo, approvalService, outboxRepo, rdb)
	reportService := report.NewService(reportRepo)

	// --- Handlers ---
	approvalHandler := approval.NewHandler(approvalService)
	authHandler := auth.NewHandler(authService)
	divisionHandler := division.NewHandler(divisionService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	reportHandler := report.NewHandler(reportService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		approval.RegisterRoutes(api, approvalHandler, rbacService)
		auth.RegisterRoutes(api, authHandler)
		division.RegisterRoutes(api, divisionHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, rdb)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
