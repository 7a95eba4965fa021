package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
)

// HolidayRepository 假日日历数据访问接口
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	BatchCreate(ctx context.Context, holidays []model.Holiday) error
	GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error)
	ListRange(ctx context.Context, start, end time.Time) ([]model.Holiday, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]model.Holiday, error)
	Update(ctx context.Context, holiday *model.Holiday) error
	Delete(ctx context.Context, date time.Time) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo 创建 HolidayRepository 实例
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

// BatchCreate 区间假日展开后的逐日插入，任一日期已存在则整体失败
func (r *holidayRepo) BatchCreate(ctx context.Context, holidays []model.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&holidays).Error
}

func (r *holidayRepo) GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

// ListRange 返回 [start, end] 闭区间内的假日，周解析一次取全
func (r *holidayRepo) ListRange(ctx context.Context, start, end time.Time) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]model.Holiday, error) {
	var holidays []model.Holiday
	db := r.db.WithContext(ctx).
		Where("date >= ?", from.Format("2006-01-02")).
		Order("date ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Update(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).
		Model(&model.Holiday{}).
		Where("date = ?", holiday.Date.Format("2006-01-02")).
		Updates(map[string]interface{}{
			"name":        holiday.Name,
			"type":        holiday.Type,
			"description": holiday.Description,
		}).Error
}

func (r *holidayRepo) Delete(ctx context.Context, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		Delete(&model.Holiday{}).Error
}
