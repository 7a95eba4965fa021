package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/service"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/response"
)

// ExceptionHandler 日程例外模块 HTTP 处理器
type ExceptionHandler struct {
	exceptionSvc service.ExceptionService
}

// NewExceptionHandler 创建 ExceptionHandler
func NewExceptionHandler(exceptionSvc service.ExceptionService) *ExceptionHandler {
	return &ExceptionHandler{exceptionSvc: exceptionSvc}
}

// List 例外列表（按学年查询，可按班级过滤）
// GET /api/v1/exceptions?academicYear=&classId=&section=
func (h *ExceptionHandler) List(c *gin.Context) {
	var req dto.ExceptionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.exceptionSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Create 创建例外
// POST /api/v1/exceptions
func (h *ExceptionHandler) Create(c *gin.Context) {
	var req dto.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exc, err := h.exceptionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}
	response.Created(c, exc)
}

// Update 更新例外
// PUT /api/v1/exceptions/:id
func (h *ExceptionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "例外ID必须为整数")
		return
	}
	var req dto.UpdateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exc, err := h.exceptionSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}
	response.OK(c, exc)
}

// Delete 删除例外
// DELETE /api/v1/exceptions/:id
func (h *ExceptionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "例外ID必须为整数")
		return
	}

	if err := h.exceptionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleExceptionError(c, err)
		return
	}
	response.OK(c, nil)
}

// Overlaps 例外重叠报告（管理员清理用）
// GET /api/v1/exceptions/overlaps?academicYear=
func (h *ExceptionHandler) Overlaps(c *gin.Context) {
	academicYear := c.Query("academicYear")
	if academicYear == "" {
		response.BadRequest(c, 10001, "academicYear不能为空")
		return
	}

	report, err := h.exceptionSvc.Overlaps(c.Request.Context(), academicYear)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}
	response.OK(c, gin.H{"list": report})
}

// UpcomingExams 未来考试列表
// GET /api/v1/upcoming-exams/:classId?academicYear=
// classId 为 "all" 时返回全部班级
func (h *ExceptionHandler) UpcomingExams(c *gin.Context) {
	academicYear := c.Query("academicYear")
	if academicYear == "" {
		response.BadRequest(c, 10001, "academicYear不能为空")
		return
	}

	var classID *int
	if raw := c.Param("classId"); raw != "all" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, 10001, "班级ID必须为整数或all")
			return
		}
		classID = &id
	}

	exams, err := h.exceptionSvc.UpcomingExams(c.Request.Context(), classID, academicYear)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}
	response.OK(c, gin.H{"list": exams})
}

// handleExceptionError 统一处理例外模块业务错误
func (h *ExceptionHandler) handleExceptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExceptionNotFound):
		response.NotFound(c, 22001, "例外记录不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 25003, "日期格式不正确")
	default:
		response.InternalError(c)
	}
}
