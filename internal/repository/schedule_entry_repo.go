package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
)

// ScheduleEntryRepository 周期课表数据访问接口
type ScheduleEntryRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByID(ctx context.Context, id int64) (*model.ScheduleEntry, error)
	ListByClass(ctx context.Context, classID int, section, academicYear string) ([]model.ScheduleEntry, error)
	ListByTeacher(ctx context.Context, teacherID, academicYear string) ([]model.ScheduleEntry, error)
	FindTeacherConflict(ctx context.Context, teacherID string, dayOfWeek int, slotID, academicYear string, excludeID int64) (*model.ScheduleEntry, error)
	FindClassSlot(ctx context.Context, classID int, section string, dayOfWeek int, slotID, academicYear string) (*model.ScheduleEntry, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	Deactivate(ctx context.Context, id int64) error
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

// NewScheduleEntryRepo 创建 ScheduleEntryRepository 实例
func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleEntryRepo) GetByID(ctx context.Context, id int64) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Subject").
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByClass 返回班级整周的启用课表行，周解析一次取全
func (r *scheduleEntryRepo) ListByClass(ctx context.Context, classID int, section, academicYear string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Subject").
		Where("class_id = ? AND section = ? AND academic_year = ? AND is_active = ?",
			classID, section, academicYear, true).
		Order("day_of_week ASC, slot_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) ListByTeacher(ctx context.Context, teacherID, academicYear string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_id = ? AND academic_year = ? AND is_active = ?",
			teacherID, academicYear, true).
		Order("day_of_week ASC, slot_id ASC").
		Find(&entries).Error
	return entries, err
}

// FindTeacherConflict 查找同一教师在同一 (星期几, 节次) 的另一条启用课表行
// excludeID > 0 时排除自身（更新场景）；未找到返回 gorm.ErrRecordNotFound
func (r *scheduleEntryRepo) FindTeacherConflict(ctx context.Context, teacherID string, dayOfWeek int, slotID, academicYear string, excludeID int64) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	db := r.db.WithContext(ctx).
		Where("teacher_id = ? AND day_of_week = ? AND slot_id = ? AND academic_year = ? AND is_active = ?",
			teacherID, dayOfWeek, slotID, academicYear, true)
	if excludeID > 0 {
		db = db.Where("id != ?", excludeID)
	}
	err := db.First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleEntryRepo) FindClassSlot(ctx context.Context, classID int, section string, dayOfWeek int, slotID, academicYear string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND section = ? AND day_of_week = ? AND slot_id = ? AND academic_year = ? AND is_active = ?",
			classID, section, dayOfWeek, slotID, academicYear, true).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleEntryRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *scheduleEntryRepo) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
