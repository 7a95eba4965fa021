package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
)

// ScheduleExceptionRepository 日程例外数据访问接口
type ScheduleExceptionRepository interface {
	Create(ctx context.Context, exception *model.ScheduleException) error
	GetByID(ctx context.Context, id int64) (*model.ScheduleException, error)
	ListRange(ctx context.Context, start, end time.Time, academicYear string) ([]model.ScheduleException, error)
	ListByDate(ctx context.Context, date time.Time, academicYear string) ([]model.ScheduleException, error)
	ListByYear(ctx context.Context, academicYear string) ([]model.ScheduleException, error)
	ListUpcomingByType(ctx context.Context, from time.Time, exceptionType, academicYear string, limit int) ([]model.ScheduleException, error)
	Update(ctx context.Context, exception *model.ScheduleException) error
	Delete(ctx context.Context, id int64) error
}

type scheduleExceptionRepo struct {
	db *gorm.DB
}

// NewScheduleExceptionRepo 创建 ScheduleExceptionRepository 实例
func NewScheduleExceptionRepo(db *gorm.DB) ScheduleExceptionRepository {
	return &scheduleExceptionRepo{db: db}
}

func (r *scheduleExceptionRepo) Create(ctx context.Context, exception *model.ScheduleException) error {
	return r.db.WithContext(ctx).Create(exception).Error
}

func (r *scheduleExceptionRepo) GetByID(ctx context.Context, id int64) (*model.ScheduleException, error) {
	var exception model.ScheduleException
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&exception).Error
	if err != nil {
		return nil, err
	}
	return &exception, nil
}

// ListRange 返回区间内全部例外，不在 SQL 层按班级过滤：
// 全校例外 class_id 为 NULL，作用域判定统一交给 AppliesToClass
func (r *scheduleExceptionRepo) ListRange(ctx context.Context, start, end time.Time, academicYear string) ([]model.ScheduleException, error) {
	var exceptions []model.ScheduleException
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ? AND academic_year = ?",
			start.Format("2006-01-02"), end.Format("2006-01-02"), academicYear).
		Order("date ASC, created_at ASC, id ASC").
		Find(&exceptions).Error
	return exceptions, err
}

func (r *scheduleExceptionRepo) ListByDate(ctx context.Context, date time.Time, academicYear string) ([]model.ScheduleException, error) {
	return r.ListRange(ctx, date, date, academicYear)
}

func (r *scheduleExceptionRepo) ListByYear(ctx context.Context, academicYear string) ([]model.ScheduleException, error) {
	var exceptions []model.ScheduleException
	err := r.db.WithContext(ctx).
		Where("academic_year = ?", academicYear).
		Order("date ASC, created_at ASC, id ASC").
		Find(&exceptions).Error
	return exceptions, err
}

func (r *scheduleExceptionRepo) ListUpcomingByType(ctx context.Context, from time.Time, exceptionType, academicYear string, limit int) ([]model.ScheduleException, error) {
	var exceptions []model.ScheduleException
	db := r.db.WithContext(ctx).
		Where("date >= ? AND type = ? AND academic_year = ?",
			from.Format("2006-01-02"), exceptionType, academicYear).
		Order("date ASC, id ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&exceptions).Error
	return exceptions, err
}

func (r *scheduleExceptionRepo) Update(ctx context.Context, exception *model.ScheduleException) error {
	return r.db.WithContext(ctx).Save(exception).Error
}

func (r *scheduleExceptionRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ScheduleException{}).Error
}
