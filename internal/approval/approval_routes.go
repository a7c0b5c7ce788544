package approval

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
	approvals := r.Group("/approvals")
	approvals.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		approvals.GET("/pending", rbac.Authorize(rbacService, "approval", "read"), handler.ListPending)
		approvals.PUT("/:id", rbac.Authorize(rbacService, "approval", "decide"), handler.Decide)
	}
}
