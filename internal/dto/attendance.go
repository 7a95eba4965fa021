package dto

// ── 考勤模块 DTO ──

// 考勤标记状态（查询视角，区别于落库的 status）
const (
	MarkStatusPresent   = "present"
	MarkStatusAbsent    = "absent"
	MarkStatusLate      = "late"
	MarkStatusNotMarked = "not_marked"
	MarkStatusFuture    = "future"
)

// MarkAttendanceRequest 单条考勤标记请求
type MarkAttendanceRequest struct {
	StudentID int64  `json:"student_id" binding:"required"`
	ClassID   int    `json:"class_id"   binding:"required"`
	Section   string `json:"section"    binding:"required,min=1,max=10"`
	Date      string `json:"date"       binding:"required"` // "2006-01-02"
	SlotID    string `json:"slot_id"    binding:"required"`
	Status    string `json:"status"     binding:"required,oneof=present absent late"`
	MarkedBy  string `json:"marked_by"  binding:"omitempty,max=64"` // 缺省时取 Token 中的 teacher_id
}

// BulkMarkRecord 批量标记中的单个学生记录
type BulkMarkRecord struct {
	StudentID int64  `json:"student_id" binding:"required"`
	Status    string `json:"status"     binding:"required,oneof=present absent late"`
}

// BulkMarkAttendanceRequest 整节课批量标记请求
// 每个学生独立落库，部分失败不回滚其余学生
type BulkMarkAttendanceRequest struct {
	ClassID  int              `json:"class_id"  binding:"required"`
	Section  string           `json:"section"   binding:"required,min=1,max=10"`
	Date     string           `json:"date"      binding:"required"`
	SlotID   string           `json:"slot_id"   binding:"required"`
	MarkedBy string           `json:"marked_by" binding:"omitempty,max=64"` // 缺省时取 Token 中的 teacher_id
	Records  []BulkMarkRecord `json:"records"   binding:"required,min=1,dive"`
}

// BulkMarkFailure 批量标记中单个学生的失败详情
type BulkMarkFailure struct {
	StudentID int64  `json:"student_id"`
	Reason    string `json:"reason"`
}

// BulkMarkAttendanceResponse 批量标记结果
type BulkMarkAttendanceResponse struct {
	Marked  int               `json:"marked"`
	Skipped int               `json:"skipped"` // 已有记录，视为正常冲突跳过
	Failed  []BulkMarkFailure `json:"failed,omitempty"`
}

// AttendanceResponse 单条考勤记录
type AttendanceResponse struct {
	AttendanceID int64  `json:"attendance_id"`
	StudentID    int64  `json:"student_id"`
	StudentName  string `json:"student_name,omitempty"`
	ClassID      int    `json:"class_id"`
	Section      string `json:"section"`
	Date         string `json:"date"`
	SlotID       string `json:"slot_id"`
	Status       string `json:"status"`
	MarkedBy     string `json:"marked_by"`
}

// AttendanceListRequest 考勤查询请求
type AttendanceListRequest struct {
	ClassID   int    `form:"class_id"`
	Section   string `form:"section"`
	StudentID int64  `form:"student_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=50" binding:"omitempty,min=1,max=200"`
}

// AttendanceListResponse 考勤查询响应
type AttendanceListResponse struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Records  []AttendanceResponse `json:"records"`
}

// PeriodStatus 当日某节次的内容与考勤标记状态
type PeriodStatus struct {
	SlotID       string        `json:"slot_id"`
	SlotName     string        `json:"slot_name"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	Content      PeriodContent `json:"content"`
	MarkStatus   string        `json:"mark_status"`
	AttendanceID *int64        `json:"attendance_id,omitempty"`
}

// TodayPeriodsResponse 班级当日节次考勤视图
type TodayPeriodsResponse struct {
	Date        string         `json:"date"`
	DayOfWeek   int            `json:"day_of_week"`
	DayType     string         `json:"day_type"`
	HolidayName string         `json:"holiday_name,omitempty"`
	ClassID     int            `json:"class_id"`
	Section     string         `json:"section"`
	StudentID   int64          `json:"student_id,omitempty"`
	Periods     []PeriodStatus `json:"periods"`
}
