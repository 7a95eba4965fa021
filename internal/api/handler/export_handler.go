package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/service"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 周视图导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWeek 导出解析后的周视图
// GET /api/v1/export/calendar-week/:classId/:academicYear/:weekOffset?format=xlsx|ics&section=
func (h *ExportHandler) ExportWeek(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classId"))
	if err != nil {
		response.BadRequest(c, 10001, "班级ID必须为整数")
		return
	}
	academicYear := c.Param("academicYear")
	weekOffset := parseWeekOffset(c.Param("weekOffset"))
	section := c.DefaultQuery("section", "A")
	format := c.DefaultQuery("format", "xlsx")

	var (
		buf         *bytes.Buffer
		filename    string
		contentType string
	)
	switch format {
	case "xlsx":
		b, name, err := h.exportSvc.ExportWeekXLSX(c.Request.Context(), classID, section, academicYear, weekOffset)
		if err != nil {
			h.handleExportError(c, err)
			return
		}
		buf, filename, contentType = b, name, contentTypeXLSX
	case "ics":
		b, name, err := h.exportSvc.ExportWeekICS(c.Request.Context(), classID, section, academicYear, weekOffset)
		if err != nil {
			h.handleExportError(c, err)
			return
		}
		buf, filename, contentType = b, name, contentTypeICS
	default:
		response.BadRequest(c, 10001, "format必须为xlsx或ics")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 20001, "班级不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 26001, "导出文件生成失败")
	default:
		response.InternalError(c)
	}
}
