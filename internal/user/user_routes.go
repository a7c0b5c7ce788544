package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", rbac.Authorize(rbacService, "user", "read"), handler.GetAll)
		users.GET("/:id", rbac.Authorize(rbacService, "user", "read"), handler.GetById)
		users.POST("", rbac.Authorize(rbacService, "user", "manage"), handler.Create)
		users.PUT("/:id", rbac.Authorize(rbacService, "user", "manage"), handler.Update)
		users.DELETE("/:id", rbac.Authorize(rbacService, "user", "manage"), handler.Delete)
	}
}
