package leaverequest

import (
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/middleware"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		requests.GET("/stats", rbac.Authorize(rbacService, "leave_request", "read"), handler.GetStats)
		requests.GET("", rbac.Authorize(rbacService, "leave_request", "read"), handler.GetAll)
		requests.GET("/:id", rbac.Authorize(rbacService, "leave_request", "read"), handler.GetById)
		requests.POST("",
			rbac.Authorize(rbacService, "leave_request", "write"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		requests.PUT("/:id", rbac.Authorize(rbacService, "leave_request", "write"), handler.Update)
		requests.DELETE("/:id", rbac.Authorize(rbacService, "leave_request", "write"), handler.Delete)
	}
}
