package model

import "time"

// 假日类型
const (
	HolidayTypeFull = "full" // 全天停课
	HolidayTypeHalf = "half" // 半日：截止时间之后的节次置空
)

// Holiday 假日日历表 — 对应 holidays
// 以日期为主键，一天至多一条；查无记录即为正常教学日
type Holiday struct {
	Date        time.Time `gorm:"type:date;primaryKey"       json:"date"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Type        string    `gorm:"type:varchar(10);not null;default:'full'" json:"type"` // full | half
	Description string    `gorm:"type:varchar(500)"          json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
