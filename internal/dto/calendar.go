package dto

// ── 周历解析模块 DTO ──
//
// ResolvedWeek* 为纯计算输出：每次请求即时合并周期课表与日期例外，
// 不落库、不缓存，由请求独占。

// 日类型
const (
	DayTypeInstructional = "instructional"
	DayTypeHoliday       = "holiday"
	DayTypeHalfHoliday   = "half_holiday"
)

// PeriodKind 节次内容种类（和类型：一节课恰好是其中一种）
type PeriodKind string

const (
	PeriodRegular PeriodKind = "regular" // 正常授课
	PeriodExam    PeriodKind = "exam"    // 考试
	PeriodEvent   PeriodKind = "event"   // 活动
	PeriodLunch   PeriodKind = "lunch"   // 午餐
	PeriodStudy   PeriodKind = "study"   // 自习
	PeriodEmpty   PeriodKind = "empty"   // 空节次
)

// PeriodContent 节次内容
// 仅通过下方构造函数创建，保证每个节次恰好一种内容、
// 字段组合与 Kind 一致，而不是"哪个字段有值猜哪种含义"
type PeriodContent struct {
	Kind        PeriodKind `json:"kind"`
	SubjectCode string     `json:"subject_code,omitempty"`
	SubjectName string     `json:"subject_name,omitempty"`
	TeacherID   string     `json:"teacher_id,omitempty"`
	TeacherName string     `json:"teacher_name,omitempty"`
	ClassID     *int       `json:"class_id,omitempty"` // 教师视角下该节所属班级
	Title       string     `json:"title,omitempty"`    // 考试/活动标题；空节次时为假日名
}

// RegularContent 正常授课
func RegularContent(subjectCode, subjectName, teacherID, teacherName string) PeriodContent {
	return PeriodContent{
		Kind:        PeriodRegular,
		SubjectCode: subjectCode,
		SubjectName: subjectName,
		TeacherID:   teacherID,
		TeacherName: teacherName,
	}
}

// ExamContent 考试
func ExamContent(title, subjectCode, subjectName string, classID *int) PeriodContent {
	return PeriodContent{
		Kind:        PeriodExam,
		Title:       title,
		SubjectCode: subjectCode,
		SubjectName: subjectName,
		ClassID:     classID,
	}
}

// EventContent 活动
func EventContent(title string, classID *int) PeriodContent {
	return PeriodContent{Kind: PeriodEvent, Title: title, ClassID: classID}
}

// LunchContent 午餐
func LunchContent() PeriodContent {
	return PeriodContent{Kind: PeriodLunch}
}

// StudyContent 自习
func StudyContent() PeriodContent {
	return PeriodContent{Kind: PeriodStudy}
}

// EmptyContent 空节次，title 可携带假日名等说明
func EmptyContent(title string) PeriodContent {
	return PeriodContent{Kind: PeriodEmpty, Title: title}
}

// ResolvedPeriod 某日某节次的解析结果
type ResolvedPeriod struct {
	SlotID    string        `json:"slot_id"`
	SlotName  string        `json:"slot_name"`
	StartTime string        `json:"start_time"` // "09:00:00"，学校本地墙上时间
	EndTime   string        `json:"end_time"`
	Content   PeriodContent `json:"content"`
}

// ResolvedDay 某个日历日期的完整解析结果
type ResolvedDay struct {
	Date        string           `json:"date"` // "2006-01-02"
	DayOfWeek   int              `json:"day_of_week"`
	DayType     string           `json:"day_type"` // instructional | holiday | half_holiday
	HolidayName string           `json:"holiday_name,omitempty"`
	Periods     []ResolvedPeriod `json:"periods"`
}

// WeekInfo 目标周元信息
type WeekInfo struct {
	Offset        int    `json:"offset"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	IsCurrentWeek bool   `json:"is_current_week"`
	WeekLabel     string `json:"week_label"`
}

// ResolvedWeekResponse 周历解析响应：恒为周一至周六 6 天
// Warnings 携带解析过程中发现的数据问题（如例外记录重叠），供管理员清理
type ResolvedWeekResponse struct {
	Days     []ResolvedDay `json:"days"`
	WeekInfo WeekInfo      `json:"week_info"`
	Warnings []string      `json:"warnings,omitempty"`
}

// StudentWeekResponse 学生周历响应：附学生与所在班级信息
type StudentWeekResponse struct {
	ResolvedWeekResponse
	StudentInfo StudentBrief `json:"student_info"`
}

// StudentBrief 学生简要信息
type StudentBrief struct {
	StudentID int64  `json:"student_id"`
	Name      string `json:"name"`
	ClassID   int    `json:"class_id"`
	Section   string `json:"section"`
}

// TeacherWeekResponse 教师周历响应：附本周课时统计
type TeacherWeekResponse struct {
	ResolvedWeekResponse
	TeacherInfo TeacherWeekInfo `json:"teacher_info"`
}

// TeacherWeekInfo 教师周历统计
type TeacherWeekInfo struct {
	TeacherID    string `json:"teacher_id"`
	Name         string `json:"name"`
	TotalPeriods int    `json:"total_periods"`
}
