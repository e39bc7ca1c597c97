package report

import (
	"github.com/gin-gonic/gin"

	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		reports.GET("/attendance", middleware.RBACAuthorize(rbacService, "report", "read"), h.Generate)
	}
}
