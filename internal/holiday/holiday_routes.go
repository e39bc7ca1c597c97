package holiday

import (
	"github.com/gin-gonic/gin"

	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.List)
		holidays.GET("/:id", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.Get)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "manage"), h.Create)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), h.Update)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), h.Delete)
		holidays.POST("/process-conflicts", middleware.RBACAuthorize(rbacService, "holiday", "manage"), h.ProcessConflicts)
	}
}
