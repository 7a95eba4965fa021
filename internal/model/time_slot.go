package model

// TimeSlot 节次目录表 — 对应 time_slots
// 全校统一的每日课节模板，按学年区分；slot_id 形如 "P1"、"P2"
type TimeSlot struct {
	SlotID       string `gorm:"type:varchar(16);primaryKey"      json:"slot_id"`
	AcademicYear string `gorm:"type:varchar(9);primaryKey"       json:"academic_year"`
	Name         string `gorm:"type:varchar(50);not null"        json:"name"`
	StartTime    string `gorm:"type:time;not null"               json:"start_time"` // "09:00:00"
	EndTime      string `gorm:"type:time;not null"               json:"end_time"`   // "09:40:00"
	OrderIndex   int    `gorm:"type:smallint;not null"           json:"order_index"`
	IsActive     bool   `gorm:"not null;default:true"            json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }
