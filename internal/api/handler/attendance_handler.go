package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/service"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// List 考勤记录查询（分页）
// GET /api/v1/attendance?student_id=&class_id=&section=&start_date=&end_date=&page=&page_size=
// 学生角色只能查询本人记录
func (h *AttendanceHandler) List(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if role == "student" {
		req.StudentID = GetStudentID(c)
	}

	result, err := h.attendanceSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OKPage(c, result.Records, result.Total, result.Page, result.PageSize)
}

// TodayPeriods 当日节次状态：课表解析结果叠加考勤标记
// GET /api/v1/attendance/today/:classId/:section?student_id=&academicYear=
func (h *AttendanceHandler) TodayPeriods(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classId"))
	if err != nil {
		response.BadRequest(c, 10001, "班级ID必须为整数")
		return
	}
	studentID, err := strconv.ParseInt(c.Query("student_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "student_id必须为整数")
		return
	}
	academicYear := c.Query("academicYear")

	result, err := h.attendanceSvc.TodayPeriods(c.Request.Context(), classID, c.Param("section"), studentID, academicYear)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// Mark 单条考勤标记
// POST /api/v1/attendance
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.MarkedBy == "" {
		req.MarkedBy = GetTeacherID(c)
	}
	if req.MarkedBy == "" {
		response.BadRequest(c, 10001, "marked_by不能为空")
		return
	}

	record, err := h.attendanceSvc.Mark(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.Created(c, record)
}

// BulkMark 整节课批量标记：逐学生独立落库，响应含成功/跳过/失败明细
// POST /api/v1/attendance/bulk
func (h *AttendanceHandler) BulkMark(c *gin.Context) {
	var req dto.BulkMarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.MarkedBy == "" {
		req.MarkedBy = GetTeacherID(c)
	}
	if req.MarkedBy == "" {
		response.BadRequest(c, 10001, "marked_by不能为空")
		return
	}

	result, err := h.attendanceSvc.BulkMark(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// handleAttendanceError 统一处理考勤模块业务错误
// 重复标记是预期内冲突（409）；同键多行属数据完整性故障（500）
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceAlreadyMarked):
		response.Conflict(c, 25001, "该学生此节次考勤已标记")
	case errors.Is(err, service.ErrDuplicateAttendance):
		response.Error(c, http.StatusInternalServerError, 25002, "考勤数据异常，请联系管理员")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 25003, "日期格式不正确")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20003, "学生不存在")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 20001, "班级不存在")
	case errors.Is(err, service.ErrStudentNotAssigned):
		response.BadRequest(c, 20004, "学生未分配到该班级")
	default:
		response.InternalError(c)
	}
}
