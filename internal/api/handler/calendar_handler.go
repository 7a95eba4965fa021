package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/service"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/response"
)

// CalendarHandler 周历模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// invalidWeekOffset 远超任何合理上限的哨兵值：
// 非整数偏移按失控偏移处理，返回空白周而非 400
const invalidWeekOffset = 1 << 30

func parseWeekOffset(raw string) int {
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return invalidWeekOffset
	}
	return offset
}

// GetClassWeek 班级周历
// GET /api/v1/calendar-week/:classId/:academicYear/:weekOffset?section=
func (h *CalendarHandler) GetClassWeek(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classId"))
	if err != nil {
		response.BadRequest(c, 10001, "班级ID必须为整数")
		return
	}
	section := c.DefaultQuery("section", "A")
	weekOffset := parseWeekOffset(c.Param("weekOffset"))

	week, err := h.calendarSvc.ResolveClassWeek(c.Request.Context(), classID, section, c.Param("academicYear"), weekOffset)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, week)
}

// GetTeacherWeek 教师周历
// GET /api/v1/teacher-calendar-week/:teacherId/:academicYear/:weekOffset
func (h *CalendarHandler) GetTeacherWeek(c *gin.Context) {
	teacherID := c.Param("teacherId")
	if teacherID == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}
	weekOffset := parseWeekOffset(c.Param("weekOffset"))

	week, err := h.calendarSvc.ResolveTeacherWeek(c.Request.Context(), teacherID, c.Param("academicYear"), weekOffset)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, week)
}

// GetStudentWeek 学生周历
// GET /api/v1/student-calendar-week/:studentId/:academicYear/:weekOffset
func (h *CalendarHandler) GetStudentWeek(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "学生ID必须为整数")
		return
	}
	weekOffset := parseWeekOffset(c.Param("weekOffset"))

	week, err := h.calendarSvc.ResolveStudentWeek(c.Request.Context(), studentID, c.Param("academicYear"), weekOffset)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, week)
}

// handleCalendarError 统一处理周历模块业务错误
func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 20001, "班级不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 20002, "教师不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20003, "学生不存在")
	case errors.Is(err, service.ErrStudentNotAssigned):
		response.BadRequest(c, 20004, "学生未分配班级")
	default:
		response.InternalError(c)
	}
}
