package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 保留科目代码 ──
//
// 周期课表中这两个代码不代表授课科目，而是占位节次：
// 解析后分别呈现为午餐与自习，而非普通课程。

const (
	SubjectCodeLunch = "LUNCH"
	SubjectCodeStudy = "STUDY"
)

// ── 星期换算 ──

// ISOWeekday 返回 1=周一 … 7=周日
// time.Weekday 以周日为 0，这里显式重映射为 7，
// 保证"今天是周日"时仍落在本周（周一起算）的第 7 天
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
