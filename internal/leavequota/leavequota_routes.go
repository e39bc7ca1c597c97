package leavequota

import (
	"github.com/gin-gonic/gin"

	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	quotas := r.Group("/leave-quotas")
	quotas.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		quotas.GET("/me", middleware.RBACAuthorize(rbacService, "leavequota", "read"), h.GetMine)
		quotas.GET("", middleware.RBACAuthorize(rbacService, "leavequota", "manage"), h.List)
		quotas.POST("", middleware.RBACAuthorize(rbacService, "leavequota", "manage"), h.Create)
		quotas.PUT("/:id", middleware.RBACAuthorize(rbacService, "leavequota", "manage"), h.SetTotal)
		quotas.POST("/generate", middleware.RBACAuthorize(rbacService, "leavequota", "manage"), h.Generate)
	}
}
