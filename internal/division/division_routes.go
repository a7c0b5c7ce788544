package division

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
	divisions := r.Group("/divisions")
	divisions.Use(middleware.AuthMiddleware())
	{
		divisions.GET("", rbac.Authorize(rbacService, "division", "read"), handler.GetAll)
		divisions.GET("/:id", rbac.Authorize(rbacService, "division", "read"), handler.GetById)
		divisions.POST("", rbac.Authorize(rbacService, "division", "manage"), handler.Create)
		divisions.PUT("/:id", rbac.Authorize(rbacService, "division", "manage"), handler.Update)
		divisions.DELETE("/:id", rbac.Authorize(rbacService, "division", "manage"), handler.Delete)
	}
}
