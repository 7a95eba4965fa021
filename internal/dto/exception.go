package dto

// ── 日程例外模块 DTO ──

// CreateExceptionRequest 创建考试/活动例外请求
// ClassID 为空表示全校生效；SlotID 为空表示覆盖全天
type CreateExceptionRequest struct {
	Date         string  `json:"date"          binding:"required"` // "2006-01-02"
	ClassID      *int    `json:"class_id"`
	Section      *string `json:"section"       binding:"omitempty,max=10"`
	SlotID       *string `json:"slot_id"       binding:"omitempty,max=16"`
	Type         string  `json:"type"          binding:"required,oneof=exam event"`
	Title        string  `json:"title"         binding:"required,min=1,max=200"`
	SubjectCode  *string `json:"subject_code"  binding:"omitempty,max=32"`
	TeacherID    *string `json:"teacher_id"    binding:"omitempty,max=64"`
	AcademicYear string  `json:"academic_year" binding:"required,len=9"`
}

// UpdateExceptionRequest 更新例外请求
type UpdateExceptionRequest struct {
	Title       *string `json:"title"        binding:"omitempty,min=1,max=200"`
	SubjectCode *string `json:"subject_code" binding:"omitempty,max=32"`
	TeacherID   *string `json:"teacher_id"   binding:"omitempty,max=64"`
	SlotID      *string `json:"slot_id"      binding:"omitempty,max=16"`
}

// ExceptionListRequest 例外列表查询参数
type ExceptionListRequest struct {
	AcademicYear string  `form:"academicYear" binding:"required,len=9"`
	ClassID      *int    `form:"classId"`
	Section      *string `form:"section" binding:"omitempty,max=10"`
}

// ExceptionResponse 例外信息响应
type ExceptionResponse struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	ClassID      *int    `json:"class_id,omitempty"`
	Section      *string `json:"section,omitempty"`
	SlotID       *string `json:"slot_id,omitempty"`
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	SubjectCode  *string `json:"subject_code,omitempty"`
	TeacherID    *string `json:"teacher_id,omitempty"`
	AcademicYear string  `json:"academic_year"`
	CreatedAt    string  `json:"created_at"`
}

// ExceptionOverlapResponse 例外重叠报告条目（供管理员清理）
type ExceptionOverlapResponse struct {
	Date      string              `json:"date"`
	SlotID    *string             `json:"slot_id,omitempty"`
	ClassID   *int                `json:"class_id,omitempty"`
	Entries   []ExceptionResponse `json:"entries"`
	Effective int64               `json:"effective_id"` // last-write-wins 胜出的记录
}

// UpcomingExamResponse 未来考试响应条目：按日期聚合科目
type UpcomingExamResponse struct {
	Date     string   `json:"date"`
	DayName  string   `json:"day_name"`
	ClassID  *int     `json:"class_id,omitempty"`
	Title    string   `json:"title"`
	Subjects []string `json:"subjects"`
}
