package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
)

// AttendanceRepository 考勤记录数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	ListByKey(ctx context.Context, studentID int64, classID int, date time.Time, slotID string) ([]model.Attendance, error)
	ListByClassDate(ctx context.Context, classID int, section string, date time.Time) ([]model.Attendance, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]model.Attendance, int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// Create 依赖 (student_id, class_id, date, slot_id) 唯一约束兜底并发重复，
// 冲突时返回 gorm.ErrDuplicatedKey
func (r *attendanceRepo) Create(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

// ListByKey 按唯一键查询，返回切片而非单条：
// 多于一条说明唯一约束被绕过（历史脏数据），调用方据此上报完整性故障
func (r *attendanceRepo) ListByKey(ctx context.Context, studentID int64, classID int, date time.Time, slotID string) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND class_id = ? AND date = ? AND slot_id = ?",
			studentID, classID, date.Format("2006-01-02"), slotID).
		Order("attendance_id ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByClassDate(ctx context.Context, classID int, section string, date time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("class_id = ? AND section = ? AND date = ?",
			classID, section, date.Format("2006-01-02")).
		Order("slot_id ASC, student_id ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) List(ctx context.Context, req *dto.AttendanceListRequest) ([]model.Attendance, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Attendance{})

	if req.ClassID > 0 {
		db = db.Where("class_id = ?", req.ClassID)
	}
	if req.Section != "" {
		db = db.Where("section = ?", req.Section)
	}
	if req.StudentID > 0 {
		db = db.Where("student_id = ?", req.StudentID)
	}
	if req.StartDate != "" {
		db = db.Where("date >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		db = db.Where("date <= ?", req.EndDate)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	var records []model.Attendance
	err := db.Preload("Student").
		Order("date DESC, slot_id ASC, student_id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	return records, total, err
}
