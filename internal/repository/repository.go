package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	TimeSlot          TimeSlotRepository
	ScheduleEntry     ScheduleEntryRepository
	Holiday           HolidayRepository
	ScheduleException ScheduleExceptionRepository
	Attendance        AttendanceRepository
	Class             ClassRepository
	Teacher           TeacherRepository
	Student           StudentRepository
	Subject           SubjectRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		TimeSlot:          NewTimeSlotRepo(db),
		ScheduleEntry:     NewScheduleEntryRepo(db),
		Holiday:           NewHolidayRepo(db),
		ScheduleException: NewScheduleExceptionRepo(db),
		Attendance:        NewAttendanceRepo(db),
		Class:             NewClassRepo(db),
		Teacher:           NewTeacherRepo(db),
		Student:           NewStudentRepo(db),
		Subject:           NewSubjectRepo(db),
	}
}
