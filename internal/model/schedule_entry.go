package model

// ScheduleEntry 周期课表表 — 对应 schedule_entries
// 每行表示一个班级在某星期几的某节次的固定安排；
// subject_code/teacher_id 可空，空视为该节次未排课
type ScheduleEntry struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"    json:"id"`
	ClassID      int     `gorm:"not null"                    json:"class_id"`
	Section      string  `gorm:"type:varchar(10);not null"   json:"section"`
	DayOfWeek    int     `gorm:"type:smallint;not null"      json:"day_of_week"` // 1=周一 … 7=周日
	SlotID       string  `gorm:"type:varchar(16);not null"   json:"slot_id"`
	SubjectCode  *string `gorm:"type:varchar(32)"            json:"subject_code,omitempty"`
	TeacherID    *string `gorm:"type:varchar(64)"            json:"teacher_id,omitempty"`
	AcademicYear string  `gorm:"type:varchar(9);not null"    json:"academic_year"`
	IsActive     bool    `gorm:"not null;default:true"       json:"is_active"`
	BaseModel

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectCode;references:SubjectCode" json:"subject,omitempty"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }
