package dto

// ── 假日模块 DTO ──

// CreateHolidayRequest 创建假日请求
// EndDate 非空时展开为逐日记录（含首尾），与假日为"日期级覆盖"的模型一致
type CreateHolidayRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	StartDate   string `json:"start_date"  binding:"required"` // "2006-01-02"
	EndDate     string `json:"end_date"`
	Type        string `json:"type"        binding:"omitempty,oneof=full half"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateHolidayRequest 更新假日请求（按日期定位）
type UpdateHolidayRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Type        *string `json:"type"        binding:"omitempty,oneof=full half"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// HolidayResponse 假日信息响应
type HolidayResponse struct {
	Date        string `json:"date"`
	DayName     string `json:"day_name"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}
