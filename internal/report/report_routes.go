package report

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
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/leave-requests", rbac.Authorize(rbacService, "report", "read"), handler.GetAll)
		reports.GET("/leave-requests/export/csv", rbac.Authorize(rbacService, "report", "read"), handler.ExportCSV)
		reports.GET("/leave-requests/export/xlsx", rbac.Authorize(rbacService, "report", "read"), handler.ExportXLSX)
	}
}
