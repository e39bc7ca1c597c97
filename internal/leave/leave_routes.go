package leave

import (
	"github.com/gin-gonic/gin"

	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), h.List)
		leaves.GET("/summary", middleware.RBACAuthorize(rbacService, "leave", "read"), h.Summary)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), h.Get)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), h.Create)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), h.Cancel)
		leaves.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.UpdateStatus)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), h.Destroy)

		leaves.POST("/:id/proofs", middleware.RBACAuthorize(rbacService, "leave", "create"), h.AddProof)
		leaves.DELETE("/proofs/:proof_id", middleware.RBACAuthorize(rbacService, "leave", "cancel"), h.DeleteProof)
		leaves.POST("/proofs/:proof_id/verify", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.VerifyProof)
	}
}
