package dto

// ── 周期课表模块 DTO ──

// CreateScheduleEntryRequest 创建周期课表条目请求
type CreateScheduleEntryRequest struct {
	ClassID      int     `json:"class_id"      binding:"required"`
	Section      string  `json:"section"       binding:"required,max=10"`
	DayOfWeek    int     `json:"day_of_week"   binding:"required,min=1,max=7"`
	SlotID       string  `json:"slot_id"       binding:"required,max=16"`
	SubjectCode  *string `json:"subject_code"  binding:"omitempty,max=32"`
	TeacherID    *string `json:"teacher_id"    binding:"omitempty,max=64"`
	AcademicYear string  `json:"academic_year" binding:"required,len=9"`
}

// UpdateScheduleEntryRequest 更新周期课表条目请求
type UpdateScheduleEntryRequest struct {
	SubjectCode *string `json:"subject_code" binding:"omitempty,max=32"`
	TeacherID   *string `json:"teacher_id"   binding:"omitempty,max=64"`
	IsActive    *bool   `json:"is_active"`
}

// ScheduleEntryResponse 周期课表条目响应
type ScheduleEntryResponse struct {
	ID           int64   `json:"id"`
	ClassID      int     `json:"class_id"`
	Section      string  `json:"section"`
	DayOfWeek    int     `json:"day_of_week"`
	SlotID       string  `json:"slot_id"`
	SubjectCode  *string `json:"subject_code,omitempty"`
	SubjectName  string  `json:"subject_name,omitempty"`
	TeacherID    *string `json:"teacher_id,omitempty"`
	TeacherName  string  `json:"teacher_name,omitempty"`
	AcademicYear string  `json:"academic_year"`
	IsActive     bool    `json:"is_active"`
}

// ScheduleConflictResponse 教师排课冲突详情（409 响应体）
type ScheduleConflictResponse struct {
	TeacherID string                `json:"teacher_id"`
	Conflict  ScheduleEntryResponse `json:"conflict"`
}
