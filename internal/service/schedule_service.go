package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/repository"
)

// ── 周期课表模块业务错误 ──

var (
	ErrScheduleEntryNotFound = errors.New("课表条目不存在")
	ErrScheduleSlotOccupied  = errors.New("该班级此节次已有排课")
	ErrScheduleConflict      = errors.New("教师在该时段已有排课")
	ErrTimeSlotNotFound      = errors.New("节次不存在")
)

// ScheduleService 周期课表业务接口
type ScheduleService interface {
	// 班级周期课表
	GetClassSchedule(ctx context.Context, classID int, section, academicYear string) ([]dto.ScheduleEntryResponse, error)
	// 教师周期课表
	GetTeacherSchedule(ctx context.Context, teacherID, academicYear string) ([]dto.ScheduleEntryResponse, error)
	// 创建条目（含教师时段冲突检测）
	Create(ctx context.Context, req *dto.CreateScheduleEntryRequest) (*dto.ScheduleEntryResponse, *dto.ScheduleConflictResponse, error)
	// 更新条目
	Update(ctx context.Context, id int64, req *dto.UpdateScheduleEntryRequest) (*dto.ScheduleEntryResponse, *dto.ScheduleConflictResponse, error)
	// 停用条目（软删除）
	Delete(ctx context.Context, id int64) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

func (s *scheduleService) GetClassSchedule(ctx context.Context, classID int, section, academicYear string) ([]dto.ScheduleEntryResponse, error) {
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, err
	}
	entries, err := s.repo.ScheduleEntry.ListByClass(ctx, classID, section, academicYear)
	if err != nil {
		s.logger.Error("查询周期课表失败", zap.Error(err))
		return nil, err
	}
	return toScheduleEntryResponses(entries), nil
}

func (s *scheduleService) GetTeacherSchedule(ctx context.Context, teacherID, academicYear string) ([]dto.ScheduleEntryResponse, error) {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}
	entries, err := s.repo.ScheduleEntry.ListByTeacher(ctx, teacherID, academicYear)
	if err != nil {
		s.logger.Error("查询教师课表失败", zap.Error(err))
		return nil, err
	}
	return toScheduleEntryResponses(entries), nil
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleEntryRequest) (*dto.ScheduleEntryResponse, *dto.ScheduleConflictResponse, error) {
	// 节次必须存在于当年目录
	if _, err := s.repo.TimeSlot.GetByID(ctx, req.SlotID, req.AcademicYear); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTimeSlotNotFound
		}
		s.logger.Error("查询节次失败", zap.Error(err))
		return nil, nil, err
	}

	// 同班级同节次查重（存储层部分唯一索引兜底）
	if _, err := s.repo.ScheduleEntry.FindClassSlot(ctx, req.ClassID, req.Section, req.DayOfWeek, req.SlotID, req.AcademicYear); err == nil {
		return nil, nil, ErrScheduleSlotOccupied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询班级节次失败", zap.Error(err))
		return nil, nil, err
	}

	// 教师时段冲突检测
	if req.TeacherID != nil {
		if conflict, err := s.teacherConflict(ctx, *req.TeacherID, req.DayOfWeek, req.SlotID, req.AcademicYear, 0); err != nil {
			return nil, nil, err
		} else if conflict != nil {
			return nil, conflict, ErrScheduleConflict
		}
	}

	entry := &model.ScheduleEntry{
		ClassID:      req.ClassID,
		Section:      req.Section,
		DayOfWeek:    req.DayOfWeek,
		SlotID:       req.SlotID,
		SubjectCode:  req.SubjectCode,
		TeacherID:    req.TeacherID,
		AcademicYear: req.AcademicYear,
		IsActive:     true,
	}
	if err := s.repo.ScheduleEntry.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrScheduleSlotOccupied
		}
		s.logger.Error("创建课表条目失败", zap.Error(err))
		return nil, nil, err
	}

	resp := toScheduleEntryResponse(entry)
	return &resp, nil, nil
}

func (s *scheduleService) Update(ctx context.Context, id int64, req *dto.UpdateScheduleEntryRequest) (*dto.ScheduleEntryResponse, *dto.ScheduleConflictResponse, error) {
	entry, err := s.repo.ScheduleEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrScheduleEntryNotFound
		}
		s.logger.Error("查询课表条目失败", zap.Error(err))
		return nil, nil, err
	}

	if req.TeacherID != nil && (entry.TeacherID == nil || *entry.TeacherID != *req.TeacherID) {
		if conflict, err := s.teacherConflict(ctx, *req.TeacherID, entry.DayOfWeek, entry.SlotID, entry.AcademicYear, entry.ID); err != nil {
			return nil, nil, err
		} else if conflict != nil {
			return nil, conflict, ErrScheduleConflict
		}
		entry.TeacherID = req.TeacherID
		entry.Teacher = nil
	}
	if req.SubjectCode != nil {
		entry.SubjectCode = req.SubjectCode
		entry.Subject = nil
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := s.repo.ScheduleEntry.Update(ctx, entry); err != nil {
		s.logger.Error("更新课表条目失败", zap.Error(err))
		return nil, nil, err
	}
	resp := toScheduleEntryResponse(entry)
	return &resp, nil, nil
}

func (s *scheduleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.ScheduleEntry.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleEntryNotFound
		}
		s.logger.Error("查询课表条目失败", zap.Error(err))
		return err
	}
	if err := s.repo.ScheduleEntry.Deactivate(ctx, id); err != nil {
		s.logger.Error("停用课表条目失败", zap.Error(err))
		return err
	}
	return nil
}

// teacherConflict 查同一教师同 (星期几, 节次) 的另一条启用条目
func (s *scheduleService) teacherConflict(ctx context.Context, teacherID string, dayOfWeek int, slotID, academicYear string, excludeID int64) (*dto.ScheduleConflictResponse, error) {
	existing, err := s.repo.ScheduleEntry.FindTeacherConflict(ctx, teacherID, dayOfWeek, slotID, academicYear, excludeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询教师冲突失败", zap.Error(err))
		return nil, err
	}
	return &dto.ScheduleConflictResponse{
		TeacherID: teacherID,
		Conflict:  toScheduleEntryResponse(existing),
	}, nil
}

func toScheduleEntryResponse(e *model.ScheduleEntry) dto.ScheduleEntryResponse {
	resp := dto.ScheduleEntryResponse{
		ID:           e.ID,
		ClassID:      e.ClassID,
		Section:      e.Section,
		DayOfWeek:    e.DayOfWeek,
		SlotID:       e.SlotID,
		SubjectCode:  e.SubjectCode,
		TeacherID:    e.TeacherID,
		AcademicYear: e.AcademicYear,
		IsActive:     e.IsActive,
	}
	if e.Subject != nil {
		resp.SubjectName = e.Subject.SubjectName
	}
	if e.Teacher != nil {
		resp.TeacherName = e.Teacher.Name
	}
	return resp
}

func toScheduleEntryResponses(entries []model.ScheduleEntry) []dto.ScheduleEntryResponse {
	out := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toScheduleEntryResponse(&entries[i]))
	}
	return out
}
