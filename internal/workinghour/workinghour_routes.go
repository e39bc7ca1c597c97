package workinghour

import (
	"github.com/gin-gonic/gin"

	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	hours := r.Group("/working-hours")
	hours.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		hours.GET("/me", middleware.RBACAuthorize(rbacService, "workinghour", "read"), h.GetMyWeek)
		hours.GET("/users/:user_id", middleware.RBACAuthorize(rbacService, "workinghour", "read"), h.GetUserWeek)
		hours.POST("/assign", middleware.RBACAuthorize(rbacService, "workinghour", "manage"), h.Assign)
		hours.PUT("/users/:user_id", middleware.RBACAuthorize(rbacService, "workinghour", "manage"), h.UpdateUserSchedule)
		hours.DELETE("/:id", middleware.RBACAuthorize(rbacService, "workinghour", "manage"), h.Delete)
	}
}
