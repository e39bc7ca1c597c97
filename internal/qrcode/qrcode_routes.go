package qrcode

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"go-absensi/internal/middleware"
	"go-absensi/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	tokens := r.Group("/qr-tokens")
	tokens.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		tokens.POST("", middleware.RBACAuthorize(rbacService, "qrcode", "generate"), h.Generate)

		scan := tokens.Group("")
		scan.Use(middleware.RateLimitByUser(rate.Limit(1), 5))
		scan.POST("/scan", middleware.RBACAuthorize(rbacService, "qrcode", "scan"), h.Scan)
	}
}
