package model

import "time"

// 例外类型
const (
	ExceptionTypeExam  = "exam"
	ExceptionTypeEvent = "event"
)

// ScheduleException 日程例外表 — 对应 schedule_exceptions
// 考试/活动对周期课表的定点覆盖：
//   - ClassID 为 NULL 表示对全部班级生效
//   - SlotID 为 NULL 表示覆盖该日期范围内的全天
//
// 同一 (date, slot, scope) 上出现多条时按 created_at 取最新（last-write-wins），
// 解析时记录 Warning 供管理员清理
type ScheduleException struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"    json:"id"`
	Date         time.Time `gorm:"type:date;not null"          json:"date"`
	ClassID      *int      `gorm:""                            json:"class_id,omitempty"`
	Section      *string   `gorm:"type:varchar(10)"            json:"section,omitempty"`
	SlotID       *string   `gorm:"type:varchar(16)"            json:"slot_id,omitempty"`
	Type         string    `gorm:"type:varchar(10);not null"   json:"type"` // exam | event
	Title        string    `gorm:"type:varchar(200);not null"  json:"title"`
	SubjectCode  *string   `gorm:"type:varchar(32)"            json:"subject_code,omitempty"`
	TeacherID    *string   `gorm:"type:varchar(64)"            json:"teacher_id,omitempty"`
	AcademicYear string    `gorm:"type:varchar(9);not null"    json:"academic_year"`
	BaseModel
}

// TableName 指定表名
func (ScheduleException) TableName() string { return "schedule_exceptions" }

// AppliesToClass 判断例外是否作用于指定班级
// ClassID 为空表示全校例外；Section 为空表示对该班级所有分部生效
func (e *ScheduleException) AppliesToClass(classID int, section string) bool {
	if e.ClassID == nil {
		return true
	}
	if *e.ClassID != classID {
		return false
	}
	if e.Section != nil && *e.Section != section {
		return false
	}
	return true
}
