package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/service"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/response"
)

// HolidayHandler 假日模块 HTTP 处理器
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// List 假日列表
// GET /api/v1/holidays?startDate=&endDate=
func (h *HolidayHandler) List(c *gin.Context) {
	list, err := h.holidaySvc.List(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Create 创建假日（支持日期区间，展开为逐日记录）
// POST /api/v1/holidays
func (h *HolidayHandler) Create(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	days, err := h.holidaySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.Created(c, gin.H{"list": days})
}

// Update 更新指定日期的假日
// PUT /api/v1/holidays/:date
func (h *HolidayHandler) Update(c *gin.Context) {
	var req dto.UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	holiday, err := h.holidaySvc.Update(c.Request.Context(), c.Param("date"), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, holiday)
}

// Delete 删除指定日期的假日
// DELETE /api/v1/holidays/:date
func (h *HolidayHandler) Delete(c *gin.Context) {
	if err := h.holidaySvc.Delete(c.Request.Context(), c.Param("date")); err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, nil)
}

// Upcoming 未来假日列表
// GET /api/v1/upcoming-holidays/:classId?limit=
// 假日是全校级别的，classId 仅为路由兼容保留，不参与过滤
func (h *HolidayHandler) Upcoming(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		response.BadRequest(c, 10001, "limit必须为正整数")
		return
	}

	list, err := h.holidaySvc.Upcoming(c.Request.Context(), limit)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// handleHolidayError 统一处理假日模块业务错误
func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, 23001, "假日记录不存在")
	case errors.Is(err, service.ErrHolidayExists):
		response.Conflict(c, 23002, "该日期已存在假日记录")
	case errors.Is(err, service.ErrInvalidHolidayRange):
		response.BadRequest(c, 23003, "假日日期区间不合法")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 23004, "日期格式不正确")
	default:
		response.InternalError(c)
	}
}
