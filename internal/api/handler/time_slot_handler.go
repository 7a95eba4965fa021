package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/service"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/response"
)

// TimeSlotHandler 节次目录模块 HTTP 处理器
type TimeSlotHandler struct {
	timeSlotSvc service.TimeSlotService
}

// NewTimeSlotHandler 创建 TimeSlotHandler
func NewTimeSlotHandler(timeSlotSvc service.TimeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{timeSlotSvc: timeSlotSvc}
}

// List 节次列表（按 order_index 升序）
// GET /api/v1/time-slots?academicYear=
func (h *TimeSlotHandler) List(c *gin.Context) {
	var req dto.TimeSlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slots, err := h.timeSlotSvc.List(c.Request.Context(), req.AcademicYear)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}
	response.OK(c, gin.H{"list": slots})
}

// Create 创建节次
// POST /api/v1/time-slots
func (h *TimeSlotHandler) Create(c *gin.Context) {
	var req dto.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.timeSlotSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}
	response.Created(c, slot)
}

// Update 更新节次
// PUT /api/v1/time-slots/:slotId?academicYear=
func (h *TimeSlotHandler) Update(c *gin.Context) {
	academicYear := c.Query("academicYear")
	if academicYear == "" {
		response.BadRequest(c, 10001, "academicYear不能为空")
		return
	}
	var req dto.UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.timeSlotSvc.Update(c.Request.Context(), c.Param("slotId"), academicYear, &req)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}
	response.OK(c, slot)
}

// Delete 停用节次（软删除）
// DELETE /api/v1/time-slots/:slotId?academicYear=
func (h *TimeSlotHandler) Delete(c *gin.Context) {
	academicYear := c.Query("academicYear")
	if academicYear == "" {
		response.BadRequest(c, 10001, "academicYear不能为空")
		return
	}

	if err := h.timeSlotSvc.Delete(c.Request.Context(), c.Param("slotId"), academicYear); err != nil {
		h.handleTimeSlotError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTimeSlotError 统一处理节次模块业务错误
func (h *TimeSlotHandler) handleTimeSlotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.NotFound(c, 24001, "节次不存在")
	case errors.Is(err, service.ErrTimeSlotExists):
		response.Conflict(c, 24002, "该节次编号已存在")
	case errors.Is(err, service.ErrDuplicateSlotOrder):
		response.Conflict(c, 24003, "节次顺序已被占用")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 24004, "节次时间范围不合法")
	default:
		response.InternalError(c)
	}
}
