package model

import "time"

// 考勤状态
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
)

// Attendance 考勤记录表 — 对应 attendances
// 唯一约束 (student_id, class_id, date, slot_id)：
// 一个学生同一天同一节次至多一条记录，重复提交必须被拒绝而非产生第二行
type Attendance struct {
	AttendanceID int64     `gorm:"primaryKey;autoIncrement"    json:"attendance_id"`
	StudentID    int64     `gorm:"not null"                    json:"student_id"`
	ClassID      int       `gorm:"not null"                    json:"class_id"`
	Section      string    `gorm:"type:varchar(10);not null"   json:"section"`
	Date         time.Time `gorm:"type:date;not null"          json:"date"`
	SlotID       string    `gorm:"type:varchar(16);not null"   json:"slot_id"`
	Status       string    `gorm:"type:varchar(10);not null"   json:"status"` // present | absent | late
	MarkedBy     string    `gorm:"type:varchar(64);not null"   json:"marked_by"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
