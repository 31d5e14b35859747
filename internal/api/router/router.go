package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"punchclock/backend/config"
	"punchclock/backend/internal/api/handler"
	"punchclock/backend/internal/api/middleware"
	"punchclock/backend/internal/model"
	"punchclock/backend/pkg/jwt"
	"punchclock/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			// 登录口按 IP 限速，防撞库
		auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetMe)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 考勤记录模块
			timeRecords := authorized.Group("/time-records")
			{
				timeRecords.POST("/toggle", h.TimeRecord.Toggle)
				timeRecords.GET("/today", h.TimeRecord.GetToday)
				timeRecords.POST("/pauses/start", h.TimeRecord.StartPause)
				timeRecords.POST("/pauses/end", h.TimeRecord.EndPause)
				timeRecords.GET("", h.TimeRecord.List)
				timeRecords.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.TimeRecord.Create)
				timeRecords.GET("/:id", h.TimeRecord.GetByID)
				timeRecords.GET("/:id/pauses", h.TimeRecord.ListPauses)
				timeRecords.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.TimeRecord.Update)
				timeRecords.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.TimeRecord.Delete)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("/user/:userId", h.Shift.ListByUser)
				shifts.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.Shift.Create)
				shifts.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.Shift.Delete)
			}

			// 派驻链接模块
			clientLinks := authorized.Group("/client-links")
			{
				clientLinks.PUT("/user/:userId", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.ClientLink.Sync)
				clientLinks.GET("/user/:userId", h.ClientLink.ListByUser)
				clientLinks.GET("/client/:clientId", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.ClientLink.ListByClient)
			}

			// 客户模块
			clients := authorized.Group("/clients")
			{
				clients.GET("", h.Client.List)
				clients.GET("/:id", h.Client.GetByID)
				clients.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.Client.Create)
				clients.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.Client.Update)
				clients.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Client.Delete)
			}

			// 企业模块
			companies := authorized.Group("/companies")
			{
				companies.GET("", h.Company.List)
				companies.GET("/:id", h.Company.GetByID)
				companies.POST("", middleware.RoleAuth(model.RoleAdmin), h.Company.Create)
				companies.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Company.Update)
				companies.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Company.Delete)
			}

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.User.List)
				users.GET("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.User.GetByID)
				users.POST("", middleware.RoleAuth(model.RoleAdmin), h.User.Create)
				users.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.Update)
				users.PUT("/:id/status", middleware.RoleAuth(model.RoleAdmin), h.User.UpdateStatus)
				users.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.Delete)
			}

			// 系统配置模块
			systemConfig := authorized.Group("/system-config")
			{
				systemConfig.GET("", h.SystemConfig.List)
				systemConfig.GET("/:key", h.SystemConfig.Get)
				systemConfig.PUT("/:key", middleware.RoleAuth(model.RoleAdmin), h.SystemConfig.Update)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/time-records", middleware.RoleAuth(model.RoleAdmin, model.RoleGestor), h.Export.ExportTimeRecords)
			}
		}
	}

	return r
}
