package handler

import "github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Calendar   *CalendarHandler
	Schedule   *ScheduleHandler
	Exception  *ExceptionHandler
	Holiday    *HolidayHandler
	Attendance *AttendanceHandler
	TimeSlot   *TimeSlotHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Calendar:   NewCalendarHandler(svc.Calendar),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Exception:  NewExceptionHandler(svc.Exception),
		Holiday:    NewHolidayHandler(svc.Holiday),
		Attendance: NewAttendanceHandler(svc.Attendance),
		TimeSlot:   NewTimeSlotHandler(svc.TimeSlot),
		Export:     NewExportHandler(svc.Export),
	}
}
