package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/response"
)

// MustGetRole 从 Gin 上下文中安全提取 role。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// GetTeacherID 提取身份系统注入的 teacher_id（教师角色才有）
func GetTeacherID(c *gin.Context) string {
	v, exists := c.Get("teacher_id")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetStudentID 提取身份系统注入的 student_id（学生角色才有）
func GetStudentID(c *gin.Context) int64 {
	v, exists := c.Get("student_id")
	if !exists {
		return 0
	}
	n, _ := v.(int64)
	return n
}
