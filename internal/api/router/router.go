package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/config"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/api/handler"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/api/middleware"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/jwt"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/redis"
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
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 解析后的周视图（班级 / 教师 / 学生）
		v1.GET("/calendar-week/:classId/:academicYear/:weekOffset", h.Calendar.GetClassWeek)
		v1.GET("/teacher-calendar-week/:teacherId/:academicYear/:weekOffset", h.Calendar.GetTeacherWeek)
		v1.GET("/student-calendar-week/:studentId/:academicYear/:weekOffset", h.Calendar.GetStudentWeek)

		// 周期课表
		v1.GET("/schedule/:classId/:section", h.Schedule.GetClassSchedule)
		v1.GET("/teacher-schedule/:teacherId", h.Schedule.GetTeacherSchedule)
		v1.POST("/schedule", middleware.RoleAuth("admin"), h.Schedule.CreateEntry)
		v1.PUT("/schedule/:id", middleware.RoleAuth("admin"), h.Schedule.UpdateEntry)
		v1.DELETE("/schedule/:id", middleware.RoleAuth("admin"), h.Schedule.DeleteEntry)

		// 节次目录
		timeSlots := v1.Group("/time-slots")
		{
			timeSlots.GET("", h.TimeSlot.List)
			timeSlots.POST("", middleware.RoleAuth("admin"), h.TimeSlot.Create)
			timeSlots.PUT("/:slotId", middleware.RoleAuth("admin"), h.TimeSlot.Update)
			timeSlots.DELETE("/:slotId", middleware.RoleAuth("admin"), h.TimeSlot.Delete)
		}

		// 日程例外（考试 / 活动）
		exceptions := v1.Group("/exceptions")
		{
			exceptions.GET("", h.Exception.List)
			exceptions.GET("/overlaps", middleware.RoleAuth("admin"), h.Exception.Overlaps)
			exceptions.POST("", middleware.RoleAuth("admin", "teacher"), h.Exception.Create)
			exceptions.PUT("/:id", middleware.RoleAuth("admin", "teacher"), h.Exception.Update)
			exceptions.DELETE("/:id", middleware.RoleAuth("admin"), h.Exception.Delete)
		}
		v1.GET("/upcoming-exams/:classId", h.Exception.UpcomingExams)

		// 假日
		holidays := v1.Group("/holidays")
		{
			holidays.GET("", h.Holiday.List)
			holidays.POST("", middleware.RoleAuth("admin"), h.Holiday.Create)
			holidays.PUT("/:date", middleware.RoleAuth("admin"), h.Holiday.Update)
			holidays.DELETE("/:date", middleware.RoleAuth("admin"), h.Holiday.Delete)
		}
		v1.GET("/upcoming-holidays/:classId", h.Holiday.Upcoming)

		// 考勤
		attendance := v1.Group("/attendance")
		{
			attendance.GET("", h.Attendance.List)
			attendance.GET("/today/:classId/:section", h.Attendance.TodayPeriods)
			attendance.POST("", middleware.RoleAuth("admin", "teacher"), h.Attendance.Mark)
			attendance.POST("/bulk",
				middleware.RoleAuth("admin", "teacher"),
				middleware.RateLimit(rdb, 30, time.Minute),
				h.Attendance.BulkMark)
		}

		// 周视图导出
		v1.GET("/export/calendar-week/:classId/:academicYear/:weekOffset", h.Export.ExportWeek)
	}

	return r
}
