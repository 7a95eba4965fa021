package dto

// ── 节次目录模块 DTO ──

// CreateTimeSlotRequest 创建节次请求
type CreateTimeSlotRequest struct {
	SlotID       string `json:"slot_id"       binding:"required,min=1,max=16"`
	AcademicYear string `json:"academic_year" binding:"required,len=9"` // "2024-2025"
	Name         string `json:"name"          binding:"required,min=1,max=50"`
	StartTime    string `json:"start_time"    binding:"required"` // "09:00:00"
	EndTime      string `json:"end_time"      binding:"required"`
	OrderIndex   int    `json:"order_index"   binding:"required,min=1"`
}

// UpdateTimeSlotRequest 更新节次请求
type UpdateTimeSlotRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=1,max=50"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	OrderIndex *int    `json:"order_index" binding:"omitempty,min=1"`
	IsActive   *bool   `json:"is_active"`
}

// TimeSlotListRequest 节次列表查询参数
type TimeSlotListRequest struct {
	AcademicYear string `form:"academicYear" binding:"required,len=9"`
}

// TimeSlotResponse 节次信息响应
type TimeSlotResponse struct {
	SlotID       string `json:"slot_id"`
	AcademicYear string `json:"academic_year"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	OrderIndex   int    `json:"order_index"`
	IsActive     bool   `json:"is_active"`
}
