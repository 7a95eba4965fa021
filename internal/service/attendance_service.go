package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/config"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	// ErrAttendanceAlreadyMarked 预期内冲突：同键重复提交按幂等拒绝
	ErrAttendanceAlreadyMarked = errors.New("该学生此节次考勤已标记")
	// ErrDuplicateAttendance 完整性故障：同键存在多行，须上报而非静默取一条
	ErrDuplicateAttendance = errors.New("考勤数据完整性故障：同一键存在多条记录")
	ErrInvalidDate         = errors.New("日期格式不正确")
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// 当日节次匹配：解析结果叠加已有考勤记录
	TodayPeriods(ctx context.Context, classID int, section string, studentID int64, academicYear string) (*dto.TodayPeriodsResponse, error)
	// 单条标记（幂等：同键重复提交返回冲突而非第二行）
	Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error)
	// 整节课批量标记：逐学生独立落库，部分失败不回滚
	BulkMark(ctx context.Context, req *dto.BulkMarkAttendanceRequest) (*dto.BulkMarkAttendanceResponse, error)
	// 考勤查询
	List(ctx context.Context, req *dto.AttendanceListRequest) (*dto.AttendanceListResponse, error)
}

type attendanceService struct {
	repo     *repository.Repository
	school   *config.SchoolConfig
	calendar CalendarService
	logger   *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, calendar CalendarService, logger *zap.Logger) AttendanceService {
	return &attendanceService{
		repo:     repo,
		school:   &cfg.School,
		calendar: calendar,
		logger:   logger,
	}
}

// currentAcademicYear 按 6 月界推算学年，如 2026-03 → "2025-2026"
func currentAcademicYear(t time.Time) string {
	if t.Month() >= time.June {
		return fmt.Sprintf("%d-%d", t.Year(), t.Year()+1)
	}
	return fmt.Sprintf("%d-%d", t.Year()-1, t.Year())
}

func (s *attendanceService) parseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", raw, s.school.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ════════════════════════════════════════════════════════════
// TodayPeriods — 节次匹配
// ════════════════════════════════════════════════════════════

func (s *attendanceService) TodayPeriods(ctx context.Context, classID int, section string, studentID int64, academicYear string) (*dto.TodayPeriodsResponse, error) {
	now := s.calendar.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if academicYear == "" {
		academicYear = currentAcademicYear(now)
	}

	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, err
	}

	day, _, err := s.calendar.ResolveClassDay(ctx, classID, section, academicYear, today)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListByClassDate(ctx, classID, section, today)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	periods, err := s.matchPeriods(day, records, studentID, today, today)
	if err != nil {
		return nil, err
	}

	return &dto.TodayPeriodsResponse{
		Date:        day.Date,
		DayOfWeek:   day.DayOfWeek,
		DayType:     day.DayType,
		HolidayName: day.HolidayName,
		ClassID:     classID,
		Section:     section,
		StudentID:   studentID,
		Periods:     periods,
	}, nil
}

// matchPeriods 节次匹配纯计算：
//   - 同键存在记录 → 该记录状态
//   - 日期在今天之后 → future
//   - 否则 → not_marked
//
// 同键多行说明唯一约束被绕过，按完整性故障上报
func (s *attendanceService) matchPeriods(day *dto.ResolvedDay, records []model.Attendance, studentID int64, date, today time.Time) ([]dto.PeriodStatus, error) {
	bySlot := make(map[string][]*model.Attendance)
	for i := range records {
		r := &records[i]
		if r.StudentID != studentID {
			continue
		}
		bySlot[r.SlotID] = append(bySlot[r.SlotID], r)
	}

	future := date.After(today)
	periods := make([]dto.PeriodStatus, 0, len(day.Periods))
	for _, p := range day.Periods {
		ps := dto.PeriodStatus{
			SlotID:     p.SlotID,
			SlotName:   p.SlotName,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			Content:    p.Content,
			MarkStatus: dto.MarkStatusNotMarked,
		}
		switch rs := bySlot[p.SlotID]; {
		case len(rs) > 1:
			s.logger.Error("考勤同键多行",
				zap.Int64("student_id", studentID),
				zap.String("date", day.Date),
				zap.String("slot_id", p.SlotID),
				zap.Int("rows", len(rs)),
			)
			return nil, ErrDuplicateAttendance
		case len(rs) == 1:
			ps.MarkStatus = rs[0].Status
			ps.AttendanceID = &rs[0].AttendanceID
		case future:
			ps.MarkStatus = dto.MarkStatusFuture
		}
		periods = append(periods, ps)
	}
	return periods, nil
}

// ════════════════════════════════════════════════════════════
// 标记
// ════════════════════════════════════════════════════════════

func (s *attendanceService) Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	date, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	record, err := s.markOne(ctx, req.StudentID, req.ClassID, req.Section, date, req.SlotID, req.Status, req.MarkedBy)
	if err != nil {
		return nil, err
	}
	resp := toAttendanceResponse(record)
	return &resp, nil
}

// markOne 单学生落库：先查同键拦截重复，再写入；
// 并发竞争下由唯一约束兜底（gorm.ErrDuplicatedKey 同样按已标记处理）
func (s *attendanceService) markOne(ctx context.Context, studentID int64, classID int, section string, date time.Time, slotID, status, markedBy string) (*model.Attendance, error) {
	existing, err := s.repo.Attendance.ListByKey(ctx, studentID, classID, date, slotID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}
	if len(existing) > 1 {
		s.logger.Error("考勤同键多行",
			zap.Int64("student_id", studentID),
			zap.String("date", date.Format("2006-01-02")),
			zap.String("slot_id", slotID),
			zap.Int("rows", len(existing)),
		)
		return nil, ErrDuplicateAttendance
	}
	if len(existing) == 1 {
		return nil, ErrAttendanceAlreadyMarked
	}

	record := &model.Attendance{
		StudentID: studentID,
		ClassID:   classID,
		Section:   section,
		Date:      date,
		SlotID:    slotID,
		Status:    status,
		MarkedBy:  markedBy,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAttendanceAlreadyMarked
		}
		s.logger.Error("写入考勤记录失败", zap.Error(err))
		return nil, err
	}
	return record, nil
}

// BulkMark 不包事务：单个学生失败只计入 failed，不影响其余学生
func (s *attendanceService) BulkMark(ctx context.Context, req *dto.BulkMarkAttendanceRequest) (*dto.BulkMarkAttendanceResponse, error) {
	date, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	resp := &dto.BulkMarkAttendanceResponse{}
	for _, rec := range req.Records {
		_, err := s.markOne(ctx, rec.StudentID, req.ClassID, req.Section, date, req.SlotID, rec.Status, req.MarkedBy)
		switch {
		case err == nil:
			resp.Marked++
		case errors.Is(err, ErrAttendanceAlreadyMarked):
			resp.Skipped++
		default:
			resp.Failed = append(resp.Failed, dto.BulkMarkFailure{
				StudentID: rec.StudentID,
				Reason:    err.Error(),
			})
		}
	}

	s.logger.Info("批量考勤完成",
		zap.Int("class_id", req.ClassID),
		zap.String("section", req.Section),
		zap.String("slot_id", req.SlotID),
		zap.Int("marked", resp.Marked),
		zap.Int("skipped", resp.Skipped),
		zap.Int("failed", len(resp.Failed)),
	)
	return resp, nil
}

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) (*dto.AttendanceListResponse, error) {
	records, total, err := s.repo.Attendance.List(ctx, req)
	if err != nil {
		s.logger.Error("查询考勤列表失败", zap.Error(err))
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	items := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		items = append(items, toAttendanceResponse(&records[i]))
	}
	return &dto.AttendanceListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Records:  items,
	}, nil
}

func toAttendanceResponse(r *model.Attendance) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		AttendanceID: r.AttendanceID,
		StudentID:    r.StudentID,
		ClassID:      r.ClassID,
		Section:      r.Section,
		Date:         r.Date.Format("2006-01-02"),
		SlotID:       r.SlotID,
		Status:       r.Status,
		MarkedBy:     r.MarkedBy,
	}
	if r.Student != nil {
		resp.StudentName = r.Student.Name
	}
	return resp
}
