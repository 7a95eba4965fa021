package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
)

// 参照实体只读仓储：班级/教师/学生/科目由外部管理后台维护，
// 本服务仅做存在性校验与名称补齐

// ClassRepository 班级数据访问接口
type ClassRepository interface {
	GetByID(ctx context.Context, classID int) (*model.Class, error)
	List(ctx context.Context, academicYear string) ([]model.Class, error)
}

// TeacherRepository 教师数据访问接口
type TeacherRepository interface {
	GetByID(ctx context.Context, teacherID string) (*model.Teacher, error)
}

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	GetByID(ctx context.Context, studentID int64) (*model.Student, error)
	ListByClass(ctx context.Context, classID int, section string) ([]model.Student, error)
}

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Subject, error)
	ListAll(ctx context.Context) ([]model.Subject, error)
}

// ── Class ──

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) GetByID(ctx context.Context, classID int) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) List(ctx context.Context, academicYear string) ([]model.Class, error) {
	var classes []model.Class
	db := r.db.WithContext(ctx)
	if academicYear != "" {
		db = db.Where("academic_year = ?", academicYear)
	}
	err := db.Order("class_id ASC, section ASC").Find(&classes).Error
	return classes, err
}

// ── Teacher ──

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) GetByID(ctx context.Context, teacherID string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ── Student ──

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByID(ctx context.Context, studentID int64) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListByClass(ctx context.Context, classID int, section string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND section = ? AND is_active = ?", classID, section, true).
		Order("student_id ASC").
		Find(&students).Error
	return students, err
}

// ── Subject ──

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) GetByCode(ctx context.Context, code string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_code = ?", code).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) ListAll(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Order("subject_code ASC").
		Find(&subjects).Error
	return subjects, err
}
