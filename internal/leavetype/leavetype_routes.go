package leavetype

import (
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/middleware"
	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", rbac.Authorize(rbacService, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", rbac.Authorize(rbacService, "leave_type", "read"), handler.GetById)
		types.POST("", rbac.Authorize(rbacService, "leave_type", "manage"), handler.Create)
		types.PUT("/:id", rbac.Authorize(rbacService, "leave_type", "manage"), handler.Update)
		types.DELETE("/:id", rbac.Authorize(rbacService, "leave_type", "manage"), handler.Delete)
	}
}
