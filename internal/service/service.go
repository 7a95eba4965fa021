package service

import (
	"go.uber.org/zap"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/config"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Calendar   CalendarService
	Attendance AttendanceService
	Schedule   ScheduleService
	Exception  ExceptionService
	Holiday    HolidayService
	TimeSlot   TimeSlotService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) *Service {
	calendar := NewCalendarService(cfg, repo, logger)
	return &Service{
		Calendar:   calendar,
		Attendance: NewAttendanceService(cfg, repo, calendar, logger),
		Schedule:   NewScheduleService(repo, logger),
		Exception:  NewExceptionService(cfg, repo, logger),
		Holiday:    NewHolidayService(cfg, repo, logger),
		TimeSlot:   NewTimeSlotService(repo, logger),
		Export:     NewExportService(calendar, logger),
	}
}
