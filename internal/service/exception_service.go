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

// ── 日程例外模块业务错误 ──

var ErrExceptionNotFound = errors.New("日程例外不存在")

// ExceptionService 日程例外业务接口
type ExceptionService interface {
	List(ctx context.Context, req *dto.ExceptionListRequest) ([]dto.ExceptionResponse, error)
	Create(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateExceptionRequest) (*dto.ExceptionResponse, error)
	Delete(ctx context.Context, id int64) error
	// Overlaps 同 (日期, 节次, 作用域) 多条例外的清理报告
	Overlaps(ctx context.Context, academicYear string) ([]dto.ExceptionOverlapResponse, error)
	// UpcomingExams 未来考试列表，按日期聚合科目；classID 为空表示全部班级
	UpcomingExams(ctx context.Context, classID *int, academicYear string) ([]dto.UpcomingExamResponse, error)
}

type exceptionService struct {
	repo   *repository.Repository
	school *config.SchoolConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewExceptionService 创建 ExceptionService 实例
func NewExceptionService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExceptionService {
	return &exceptionService{
		repo:   repo,
		school: &cfg.School,
		logger: logger,
		now:    time.Now,
	}
}

func (s *exceptionService) List(ctx context.Context, req *dto.ExceptionListRequest) ([]dto.ExceptionResponse, error) {
	exceptions, err := s.repo.ScheduleException.ListByYear(ctx, req.AcademicYear)
	if err != nil {
		s.logger.Error("查询例外列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ExceptionResponse, 0, len(exceptions))
	for i := range exceptions {
		e := &exceptions[i]
		if req.ClassID != nil {
			section := ""
			if req.Section != nil {
				section = *req.Section
			}
			if !e.AppliesToClass(*req.ClassID, section) {
				continue
			}
		}
		out = append(out, toExceptionResponse(e))
	}
	return out, nil
}

func (s *exceptionService) Create(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", req.Date, s.school.Location())
	if err != nil {
		return nil, ErrInvalidDate
	}

	exception := &model.ScheduleException{
		Date:         date,
		ClassID:      req.ClassID,
		Section:      req.Section,
		SlotID:       req.SlotID,
		Type:         req.Type,
		Title:        req.Title,
		SubjectCode:  req.SubjectCode,
		TeacherID:    req.TeacherID,
		AcademicYear: req.AcademicYear,
	}
	if err := s.repo.ScheduleException.Create(ctx, exception); err != nil {
		s.logger.Error("创建例外失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建日程例外",
		zap.Int64("id", exception.ID),
		zap.String("date", req.Date),
		zap.String("type", req.Type),
	)
	resp := toExceptionResponse(exception)
	return &resp, nil
}

func (s *exceptionService) Update(ctx context.Context, id int64, req *dto.UpdateExceptionRequest) (*dto.ExceptionResponse, error) {
	exception, err := s.repo.ScheduleException.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("查询例外失败", zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		exception.Title = *req.Title
	}
	if req.SubjectCode != nil {
		exception.SubjectCode = req.SubjectCode
	}
	if req.TeacherID != nil {
		exception.TeacherID = req.TeacherID
	}
	if req.SlotID != nil {
		exception.SlotID = req.SlotID
	}

	if err := s.repo.ScheduleException.Update(ctx, exception); err != nil {
		s.logger.Error("更新例外失败", zap.Error(err))
		return nil, err
	}
	resp := toExceptionResponse(exception)
	return &resp, nil
}

func (s *exceptionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.ScheduleException.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExceptionNotFound
		}
		s.logger.Error("查询例外失败", zap.Error(err))
		return err
	}
	if err := s.repo.ScheduleException.Delete(ctx, id); err != nil {
		s.logger.Error("删除例外失败", zap.Error(err))
		return err
	}
	return nil
}

// Overlaps 按 (日期, 节次, 班级作用域) 分桶，桶内多于一条即为重叠；
// effective_id 标出 last-write-wins 胜出的记录，其余为待清理项
func (s *exceptionService) Overlaps(ctx context.Context, academicYear string) ([]dto.ExceptionOverlapResponse, error) {
	exceptions, err := s.repo.ScheduleException.ListByYear(ctx, academicYear)
	if err != nil {
		s.logger.Error("查询例外列表失败", zap.Error(err))
		return nil, err
	}

	buckets := make(map[string][]*model.ScheduleException)
	var order []string
	for i := range exceptions {
		e := &exceptions[i]
		key := overlapKey(e)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], e)
	}

	var out []dto.ExceptionOverlapResponse
	for _, key := range order {
		group := buckets[key]
		if len(group) < 2 {
			continue
		}
		effective := group[0]
		for _, e := range group[1:] {
			if laterWins(effective, e) {
				effective = e
			}
		}
		entries := make([]dto.ExceptionResponse, 0, len(group))
		for _, e := range group {
			entries = append(entries, toExceptionResponse(e))
		}
		out = append(out, dto.ExceptionOverlapResponse{
			Date:      effective.Date.Format("2006-01-02"),
			SlotID:    effective.SlotID,
			ClassID:   effective.ClassID,
			Entries:   entries,
			Effective: effective.ID,
		})
	}
	return out, nil
}

func overlapKey(e *model.ScheduleException) string {
	slot := "全天"
	if e.SlotID != nil {
		slot = *e.SlotID
	}
	scope := "全校"
	if e.ClassID != nil {
		scope = fmt.Sprintf("%d", *e.ClassID)
		if e.Section != nil {
			scope += "-" + *e.Section
		}
	}
	return e.Date.Format("2006-01-02") + "/" + slot + "/" + scope
}

func (s *exceptionService) UpcomingExams(ctx context.Context, classID *int, academicYear string) ([]dto.UpcomingExamResponse, error) {
	today := s.now().In(s.school.Location())
	exams, err := s.repo.ScheduleException.ListUpcomingByType(ctx, today, model.ExceptionTypeExam, academicYear, 0)
	if err != nil {
		s.logger.Error("查询未来考试失败", zap.Error(err))
		return nil, err
	}

	// 按日期聚合科目，保持日期升序
	var out []dto.UpcomingExamResponse
	index := make(map[string]int)
	for i := range exams {
		e := &exams[i]
		if classID != nil && e.ClassID != nil && *e.ClassID != *classID {
			continue
		}
		dateStr := e.Date.Format("2006-01-02")
		pos, seen := index[dateStr]
		if !seen {
			out = append(out, dto.UpcomingExamResponse{
				Date:    dateStr,
				DayName: e.Date.Weekday().String(),
				ClassID: e.ClassID,
				Title:   e.Title,
			})
			pos = len(out) - 1
			index[dateStr] = pos
		}
		if e.SubjectCode != nil && !containsString(out[pos].Subjects, *e.SubjectCode) {
			out[pos].Subjects = append(out[pos].Subjects, *e.SubjectCode)
		}
	}
	return out, nil
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func toExceptionResponse(e *model.ScheduleException) dto.ExceptionResponse {
	return dto.ExceptionResponse{
		ID:           e.ID,
		Date:         e.Date.Format("2006-01-02"),
		ClassID:      e.ClassID,
		Section:      e.Section,
		SlotID:       e.SlotID,
		Type:         e.Type,
		Title:        e.Title,
		SubjectCode:  e.SubjectCode,
		TeacherID:    e.TeacherID,
		AcademicYear: e.AcademicYear,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}
