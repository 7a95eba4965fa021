package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
)

// TimeSlotRepository 节次目录数据访问接口
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *model.TimeSlot) error
	GetByID(ctx context.Context, slotID, academicYear string) (*model.TimeSlot, error)
	ListActive(ctx context.Context, academicYear string) ([]model.TimeSlot, error)
	List(ctx context.Context, academicYear string) ([]model.TimeSlot, error)
	Update(ctx context.Context, slot *model.TimeSlot) error
	Deactivate(ctx context.Context, slotID, academicYear string) error
}

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo 创建 TimeSlotRepository 实例
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) Create(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timeSlotRepo) GetByID(ctx context.Context, slotID, academicYear string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND academic_year = ?", slotID, academicYear).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListActive 按 order_index 升序返回当前学年启用的节次
// 空目录是合法状态（学年初未建节次），调用方自行处理空切片
func (r *timeSlotRepo) ListActive(ctx context.Context, academicYear string) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("academic_year = ? AND is_active = ?", academicYear, true).
		Order("order_index ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) List(ctx context.Context, academicYear string) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("academic_year = ?", academicYear).
		Order("order_index ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) Update(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *timeSlotRepo) Deactivate(ctx context.Context, slotID, academicYear string) error {
	return r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Where("slot_id = ? AND academic_year = ?", slotID, academicYear).
		Update("is_active", false).Error
}
