package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/repository"
)

// ── 节次目录模块业务错误 ──

var (
	ErrTimeSlotExists     = errors.New("该学年已存在同编号节次")
	ErrDuplicateSlotOrder = errors.New("该学年已存在同序号的启用节次")
	ErrInvalidTimeRange   = errors.New("节次开始时间必须早于结束时间")
)

// TimeSlotService 节次目录业务接口
type TimeSlotService interface {
	List(ctx context.Context, academicYear string) ([]dto.TimeSlotResponse, error)
	Create(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	Update(ctx context.Context, slotID, academicYear string, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	Delete(ctx context.Context, slotID, academicYear string) error
}

type timeSlotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeSlotService 创建 TimeSlotService 实例
func NewTimeSlotService(repo *repository.Repository, logger *zap.Logger) TimeSlotService {
	return &timeSlotService{repo: repo, logger: logger}
}

// validSlotTime 校验 "HH:MM:SS" 格式
func validSlotTime(raw string) bool {
	_, err := time.Parse("15:04:05", raw)
	return err == nil
}

func (s *timeSlotService) List(ctx context.Context, academicYear string) ([]dto.TimeSlotResponse, error) {
	slots, err := s.repo.TimeSlot.List(ctx, academicYear)
	if err != nil {
		s.logger.Error("查询节次目录失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.TimeSlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, toTimeSlotResponse(&slots[i]))
	}
	return out, nil
}

func (s *timeSlotService) Create(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	if !validSlotTime(req.StartTime) || !validSlotTime(req.EndTime) || req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}

	if _, err := s.repo.TimeSlot.GetByID(ctx, req.SlotID, req.AcademicYear); err == nil {
		return nil, ErrTimeSlotExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询节次失败", zap.Error(err))
		return nil, err
	}

	// 序号在启用节次内唯一（存储层部分唯一索引兜底）
	active, err := s.repo.TimeSlot.ListActive(ctx, req.AcademicYear)
	if err != nil {
		s.logger.Error("查询节次目录失败", zap.Error(err))
		return nil, err
	}
	for i := range active {
		if active[i].OrderIndex == req.OrderIndex {
			return nil, ErrDuplicateSlotOrder
		}
	}

	slot := &model.TimeSlot{
		SlotID:       req.SlotID,
		AcademicYear: req.AcademicYear,
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		OrderIndex:   req.OrderIndex,
		IsActive:     true,
	}
	if err := s.repo.TimeSlot.Create(ctx, slot); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlotOrder
		}
		s.logger.Error("创建节次失败", zap.Error(err))
		return nil, err
	}
	resp := toTimeSlotResponse(slot)
	return &resp, nil
}

func (s *timeSlotService) Update(ctx context.Context, slotID, academicYear string, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	slot, err := s.repo.TimeSlot.GetByID(ctx, slotID, academicYear)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("查询节次失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		slot.Name = *req.Name
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if !validSlotTime(slot.StartTime) || !validSlotTime(slot.EndTime) || slot.StartTime >= slot.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if req.OrderIndex != nil && *req.OrderIndex != slot.OrderIndex {
		active, err := s.repo.TimeSlot.ListActive(ctx, academicYear)
		if err != nil {
			s.logger.Error("查询节次目录失败", zap.Error(err))
			return nil, err
		}
		for i := range active {
			if active[i].OrderIndex == *req.OrderIndex && active[i].SlotID != slotID {
				return nil, ErrDuplicateSlotOrder
			}
		}
		slot.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := s.repo.TimeSlot.Update(ctx, slot); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlotOrder
		}
		s.logger.Error("更新节次失败", zap.Error(err))
		return nil, err
	}
	resp := toTimeSlotResponse(slot)
	return &resp, nil
}

// Delete 软停用，解析端按 is_active 过滤
func (s *timeSlotService) Delete(ctx context.Context, slotID, academicYear string) error {
	if _, err := s.repo.TimeSlot.GetByID(ctx, slotID, academicYear); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeSlotNotFound
		}
		s.logger.Error("查询节次失败", zap.Error(err))
		return err
	}
	if err := s.repo.TimeSlot.Deactivate(ctx, slotID, academicYear); err != nil {
		s.logger.Error("停用节次失败", zap.Error(err))
		return err
	}
	return nil
}

func toTimeSlotResponse(slot *model.TimeSlot) dto.TimeSlotResponse {
	return dto.TimeSlotResponse{
		SlotID:       slot.SlotID,
		AcademicYear: slot.AcademicYear,
		Name:         slot.Name,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		OrderIndex:   slot.OrderIndex,
		IsActive:     slot.IsActive,
	}
}
