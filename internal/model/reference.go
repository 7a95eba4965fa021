package model

// 参照实体：学生/教师/班级/科目的增删改由管理后台（外部协作方）负责，
// 本服务只做存在性校验与名称关联查询。

// Class 班级表 — 对应 classes
type Class struct {
	ClassID      int    `gorm:"primaryKey"                 json:"class_id"`
	ClassName    string `gorm:"type:varchar(50);not null"  json:"class_name"`
	Section      string `gorm:"type:varchar(10);not null"  json:"section"`
	AcademicYear string `gorm:"type:varchar(9);not null"   json:"academic_year"`
	BaseModel
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }

// Teacher 教师表 — 对应 teachers
// teacher_id 为身份系统分配的字符串标识，如 "rajeshmaths080910"
type Teacher struct {
	TeacherID string `gorm:"type:varchar(64);primaryKey" json:"teacher_id"`
	Name      string `gorm:"type:varchar(100);not null"  json:"name"`
	Email     string `gorm:"type:varchar(255)"           json:"email,omitempty"`
	IsActive  bool   `gorm:"not null;default:true"       json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// Student 学生表 — 对应 students
// student_id 为 64 位整数，精度在服务内部保持完整，仅在 API 边界序列化一次
type Student struct {
	StudentID int64   `gorm:"primaryKey"                 json:"student_id"`
	Name      string  `gorm:"type:varchar(100);not null" json:"name"`
	ClassID   *int    `gorm:""                           json:"class_id,omitempty"`
	Section   *string `gorm:"type:varchar(10)"           json:"section,omitempty"`
	IsActive  bool    `gorm:"not null;default:true"      json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// Subject 科目表 — 对应 subjects
type Subject struct {
	SubjectCode string `gorm:"type:varchar(32);primaryKey" json:"subject_code"`
	SubjectName string `gorm:"type:varchar(100);not null"  json:"subject_name"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
