package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/config"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/repository"
)

// ── 假日模块业务错误 ──

var (
	ErrHolidayNotFound     = errors.New("假日不存在")
	ErrHolidayExists       = errors.New("该日期已存在假日")
	ErrInvalidHolidayRange = errors.New("假日结束日期早于开始日期")
)

// HolidayService 假日日历业务接口
type HolidayService interface {
	List(ctx context.Context, startDate, endDate string) ([]dto.HolidayResponse, error)
	// Create 区间假日展开为逐日记录（含首尾）
	Create(ctx context.Context, req *dto.CreateHolidayRequest) ([]dto.HolidayResponse, error)
	Update(ctx context.Context, date string, req *dto.UpdateHolidayRequest) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, date string) error
	// Upcoming 未来假日（假日是全校级别的，和班级无关）
	Upcoming(ctx context.Context, limit int) ([]dto.HolidayResponse, error)
}

type holidayService struct {
	repo   *repository.Repository
	school *config.SchoolConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{
		repo:   repo,
		school: &cfg.School,
		logger: logger,
		now:    time.Now,
	}
}

func (s *holidayService) parseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", raw, s.school.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func (s *holidayService) List(ctx context.Context, startDate, endDate string) ([]dto.HolidayResponse, error) {
	// 缺省区间取当前日期前后各一年
	now := s.now().In(s.school.Location())
	start := now.AddDate(-1, 0, 0)
	end := now.AddDate(1, 0, 0)
	if startDate != "" {
		var err error
		if start, err = s.parseDate(startDate); err != nil {
			return nil, err
		}
	}
	if endDate != "" {
		var err error
		if end, err = s.parseDate(endDate); err != nil {
			return nil, err
		}
	}

	holidays, err := s.repo.Holiday.ListRange(ctx, start, end)
	if err != nil {
		s.logger.Error("查询假日列表失败", zap.Error(err))
		return nil, err
	}
	return toHolidayResponses(holidays), nil
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest) ([]dto.HolidayResponse, error) {
	start, err := s.parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end := start
	if req.EndDate != "" {
		if end, err = s.parseDate(req.EndDate); err != nil {
			return nil, err
		}
	}
	if end.Before(start) {
		return nil, ErrInvalidHolidayRange
	}

	holidayType := req.Type
	if holidayType == "" {
		holidayType = model.HolidayTypeFull
	}

	var holidays []model.Holiday
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		holidays = append(holidays, model.Holiday{
			Date:        d,
			Name:        req.Name,
			Type:        holidayType,
			Description: req.Description,
		})
	}

	if err := s.repo.Holiday.BatchCreate(ctx, holidays); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrHolidayExists
		}
		s.logger.Error("创建假日失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建假日",
		zap.String("name", req.Name),
		zap.String("start", start.Format("2006-01-02")),
		zap.String("end", end.Format("2006-01-02")),
		zap.Int("days", len(holidays)),
	)
	return toHolidayResponses(holidays), nil
}

func (s *holidayService) Update(ctx context.Context, date string, req *dto.UpdateHolidayRequest) (*dto.HolidayResponse, error) {
	d, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	holiday, err := s.repo.Holiday.GetByDate(ctx, d)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHolidayNotFound
		}
		s.logger.Error("查询假日失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		holiday.Name = *req.Name
	}
	if req.Type != nil {
		holiday.Type = *req.Type
	}
	if req.Description != nil {
		holiday.Description = *req.Description
	}

	if err := s.repo.Holiday.Update(ctx, holiday); err != nil {
		s.logger.Error("更新假日失败", zap.Error(err))
		return nil, err
	}
	resp := toHolidayResponse(holiday)
	return &resp, nil
}

func (s *holidayService) Delete(ctx context.Context, date string) error {
	d, err := s.parseDate(date)
	if err != nil {
		return err
	}
	if _, err := s.repo.Holiday.GetByDate(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("查询假日失败", zap.Error(err))
		return err
	}
	if err := s.repo.Holiday.Delete(ctx, d); err != nil {
		s.logger.Error("删除假日失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *holidayService) Upcoming(ctx context.Context, limit int) ([]dto.HolidayResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	today := s.now().In(s.school.Location())
	holidays, err := s.repo.Holiday.ListUpcoming(ctx, today, limit)
	if err != nil {
		s.logger.Error("查询未来假日失败", zap.Error(err))
		return nil, err
	}
	return toHolidayResponses(holidays), nil
}

func toHolidayResponse(h *model.Holiday) dto.HolidayResponse {
	return dto.HolidayResponse{
		Date:        h.Date.Format("2006-01-02"),
		DayName:     h.Date.Weekday().String(),
		Name:        h.Name,
		Type:        h.Type,
		Description: h.Description,
	}
}

func toHolidayResponses(holidays []model.Holiday) []dto.HolidayResponse {
	out := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		out = append(out, toHolidayResponse(&holidays[i]))
	}
	return out
}
