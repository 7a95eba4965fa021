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

// ScheduleHandler 周期课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetClassSchedule 班级周期课表
// GET /api/v1/schedule/:classId/:section?academicYear=
func (h *ScheduleHandler) GetClassSchedule(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classId"))
	if err != nil {
		response.BadRequest(c, 10001, "班级ID必须为整数")
		return
	}
	academicYear := c.Query("academicYear")
	if academicYear == "" {
		response.BadRequest(c, 10001, "academicYear不能为空")
		return
	}

	entries, err := h.scheduleSvc.GetClassSchedule(c.Request.Context(), classID, c.Param("section"), academicYear)
	if err != nil {
		h.handleScheduleError(c, err, nil)
		return
	}
	response.OK(c, gin.H{"list": entries})
}

// GetTeacherSchedule 教师周期课表
// GET /api/v1/teacher-schedule/:teacherId?academicYear=
func (h *ScheduleHandler) GetTeacherSchedule(c *gin.Context) {
	teacherID := c.Param("teacherId")
	academicYear := c.Query("academicYear")
	if academicYear == "" {
		response.BadRequest(c, 10001, "academicYear不能为空")
		return
	}

	entries, err := h.scheduleSvc.GetTeacherSchedule(c.Request.Context(), teacherID, academicYear)
	if err != nil {
		h.handleScheduleError(c, err, nil)
		return
	}
	response.OK(c, gin.H{"list": entries})
}

// CreateEntry 创建课表条目
// POST /api/v1/schedule
func (h *ScheduleHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, conflict, err := h.scheduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err, conflict)
		return
	}
	response.Created(c, entry)
}

// UpdateEntry 更新课表条目
// PUT /api/v1/schedule/:id
func (h *ScheduleHandler) UpdateEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "条目ID必须为整数")
		return
	}
	var req dto.UpdateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, conflict, err := h.scheduleSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleScheduleError(c, err, conflict)
		return
	}
	response.OK(c, entry)
}

// DeleteEntry 停用课表条目
// DELETE /api/v1/schedule/:id
func (h *ScheduleHandler) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "条目ID必须为整数")
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err, nil)
		return
	}
	response.OK(c, nil)
}

// handleScheduleError 统一处理课表模块业务错误
// 教师冲突附带冲突条目详情（409 details 由 data 承载）
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error, conflict *dto.ScheduleConflictResponse) {
	switch {
	case errors.Is(err, service.ErrScheduleEntryNotFound):
		response.NotFound(c, 21001, "课表条目不存在")
	case errors.Is(err, service.ErrScheduleSlotOccupied):
		response.Conflict(c, 21002, "该班级此节次已有排课")
	case errors.Is(err, service.ErrScheduleConflict):
		c.JSON(http.StatusConflict, response.Response{Code: 21003, Message: "教师在该时段已有排课", Data: conflict})
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.BadRequest(c, 21004, "节次不存在")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 20001, "班级不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 20002, "教师不存在")
	default:
		response.InternalError(c)
	}
}
