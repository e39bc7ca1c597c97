package attendance

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		clock := attendances.Group("")
		clock.Use(middleware.RateLimitByUser(rate.Limit(1), 5))
		if rdb != nil {
			clock.Use(middleware.Idempotency(rdb))
		}
		clock.POST("/clock", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.RecordClock)

		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.List)
		attendances.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetToday)

		taskLogs := attendances.Group("/task-logs")
		{
			taskLogs.GET("", middleware.RBACAuthorize(rbacService, "tasklog", "read"), h.GetTaskLogs)
			taskLogs.POST("", middleware.RBACAuthorize(rbacService, "tasklog", "create"), h.CreateTaskLog)
			taskLogs.PUT("/:id", middleware.RBACAuthorize(rbacService, "tasklog", "update"), h.UpdateTaskLog)
			taskLogs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "tasklog", "delete"), h.DeleteTaskLog)
		}
	}
}
