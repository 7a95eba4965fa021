package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
)

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[string]*model.TimeSlot // key: slotID+"/"+year
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func slotKey(slotID, year string) string { return slotID + "/" + year }

func (m *mockTimeSlotRepo) Create(_ context.Context, slot *model.TimeSlot) error {
	key := slotKey(slot.SlotID, slot.AcademicYear)
	if _, ok := m.slots[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.slots[key] = slot
	return nil
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, slotID, year string) (*model.TimeSlot, error) {
	if s, ok := m.slots[slotKey(slotID, year)]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) ListActive(_ context.Context, year string) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, s := range m.slots {
		if s.AcademicYear == year && s.IsActive {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderIndex < result[j].OrderIndex })
	return result, nil
}

func (m *mockTimeSlotRepo) List(_ context.Context, year string) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, s := range m.slots {
		if s.AcademicYear == year {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderIndex < result[j].OrderIndex })
	return result, nil
}

func (m *mockTimeSlotRepo) Update(_ context.Context, slot *model.TimeSlot) error {
	m.slots[slotKey(slot.SlotID, slot.AcademicYear)] = slot
	return nil
}

func (m *mockTimeSlotRepo) Deactivate(_ context.Context, slotID, year string) error {
	if s, ok := m.slots[slotKey(slotID, year)]; ok {
		s.IsActive = false
	}
	return nil
}

// ── Mock ScheduleEntryRepository ──

type mockScheduleEntryRepo struct {
	entries map[int64]*model.ScheduleEntry
	nextID  int64
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{entries: make(map[int64]*model.ScheduleEntry), nextID: 1}
}

func (m *mockScheduleEntryRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockScheduleEntryRepo) GetByID(_ context.Context, id int64) (*model.ScheduleEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) ListByClass(_ context.Context, classID int, section, year string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.ClassID == classID && e.Section == section && e.AcademicYear == year && e.IsActive {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockScheduleEntryRepo) ListByTeacher(_ context.Context, teacherID, year string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.TeacherID != nil && *e.TeacherID == teacherID && e.AcademicYear == year && e.IsActive {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockScheduleEntryRepo) FindTeacherConflict(_ context.Context, teacherID string, dayOfWeek int, slotID, year string, excludeID int64) (*model.ScheduleEntry, error) {
	for _, e := range m.entries {
		if e.TeacherID != nil && *e.TeacherID == teacherID &&
			e.DayOfWeek == dayOfWeek && e.SlotID == slotID &&
			e.AcademicYear == year && e.IsActive && e.ID != excludeID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) FindClassSlot(_ context.Context, classID int, section string, dayOfWeek int, slotID, year string) (*model.ScheduleEntry, error) {
	for _, e := range m.entries {
		if e.ClassID == classID && e.Section == section &&
			e.DayOfWeek == dayOfWeek && e.SlotID == slotID &&
			e.AcademicYear == year && e.IsActive {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockScheduleEntryRepo) Deactivate(_ context.Context, id int64) error {
	if e, ok := m.entries[id]; ok {
		e.IsActive = false
	}
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday // key: "2006-01-02"
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	key := holiday.Date.Format("2006-01-02")
	if _, ok := m.holidays[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.holidays[key] = holiday
	return nil
}

func (m *mockHolidayRepo) BatchCreate(ctx context.Context, holidays []model.Holiday) error {
	for i := range holidays {
		if _, ok := m.holidays[holidays[i].Date.Format("2006-01-02")]; ok {
			return gorm.ErrDuplicatedKey
		}
	}
	for i := range holidays {
		h := holidays[i]
		m.holidays[h.Date.Format("2006-01-02")] = &h
	}
	return nil
}

func (m *mockHolidayRepo) GetByDate(_ context.Context, date time.Time) (*model.Holiday, error) {
	if h, ok := m.holidays[date.Format("2006-01-02")]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) ListRange(_ context.Context, start, end time.Time) ([]model.Holiday, error) {
	s, e := start.Format("2006-01-02"), end.Format("2006-01-02")
	var result []model.Holiday
	for key, h := range m.holidays {
		if key >= s && key <= e {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockHolidayRepo) ListUpcoming(_ context.Context, from time.Time, limit int) ([]model.Holiday, error) {
	f := from.Format("2006-01-02")
	var result []model.Holiday
	for key, h := range m.holidays {
		if key >= f {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockHolidayRepo) Update(_ context.Context, holiday *model.Holiday) error {
	m.holidays[holiday.Date.Format("2006-01-02")] = holiday
	return nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, date time.Time) error {
	delete(m.holidays, date.Format("2006-01-02"))
	return nil
}

// ── Mock ScheduleExceptionRepository ──

type mockScheduleExceptionRepo struct {
	exceptions map[int64]*model.ScheduleException
	nextID     int64
}

func newMockScheduleExceptionRepo() *mockScheduleExceptionRepo {
	return &mockScheduleExceptionRepo{exceptions: make(map[int64]*model.ScheduleException), nextID: 1}
}

func (m *mockScheduleExceptionRepo) Create(_ context.Context, exception *model.ScheduleException) error {
	exception.ID = m.nextID
	m.nextID++
	if exception.CreatedAt.IsZero() {
		exception.CreatedAt = time.Now()
	}
	m.exceptions[exception.ID] = exception
	return nil
}

func (m *mockScheduleExceptionRepo) GetByID(_ context.Context, id int64) (*model.ScheduleException, error) {
	if e, ok := m.exceptions[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func sortExceptions(result []model.ScheduleException) {
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
}

func (m *mockScheduleExceptionRepo) ListRange(_ context.Context, start, end time.Time, year string) ([]model.ScheduleException, error) {
	s, e := start.Format("2006-01-02"), end.Format("2006-01-02")
	var result []model.ScheduleException
	for _, exc := range m.exceptions {
		key := exc.Date.Format("2006-01-02")
		if key >= s && key <= e && exc.AcademicYear == year {
			result = append(result, *exc)
		}
	}
	sortExceptions(result)
	return result, nil
}

func (m *mockScheduleExceptionRepo) ListByDate(ctx context.Context, date time.Time, year string) ([]model.ScheduleException, error) {
	return m.ListRange(ctx, date, date, year)
}

func (m *mockScheduleExceptionRepo) ListByYear(_ context.Context, year string) ([]model.ScheduleException, error) {
	var result []model.ScheduleException
	for _, exc := range m.exceptions {
		if exc.AcademicYear == year {
			result = append(result, *exc)
		}
	}
	sortExceptions(result)
	return result, nil
}

func (m *mockScheduleExceptionRepo) ListUpcomingByType(_ context.Context, from time.Time, exceptionType, year string, limit int) ([]model.ScheduleException, error) {
	f := from.Format("2006-01-02")
	var result []model.ScheduleException
	for _, exc := range m.exceptions {
		if exc.Date.Format("2006-01-02") >= f && exc.Type == exceptionType && exc.AcademicYear == year {
			result = append(result, *exc)
		}
	}
	sortExceptions(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockScheduleExceptionRepo) Update(_ context.Context, exception *model.ScheduleException) error {
	m.exceptions[exception.ID] = exception
	return nil
}

func (m *mockScheduleExceptionRepo) Delete(_ context.Context, id int64) error {
	delete(m.exceptions, id)
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records []model.Attendance
	nextID  int64
	// createErr 非空时下一次 Create 返回该错误（模拟写入失败）
	createErr error
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{nextID: 1}
}

func (m *mockAttendanceRepo) Create(_ context.Context, attendance *model.Attendance) error {
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		return err
	}
	for _, r := range m.records {
		if r.StudentID == attendance.StudentID && r.ClassID == attendance.ClassID &&
			r.Date.Format("2006-01-02") == attendance.Date.Format("2006-01-02") &&
			r.SlotID == attendance.SlotID {
			return gorm.ErrDuplicatedKey
		}
	}
	attendance.AttendanceID = m.nextID
	m.nextID++
	m.records = append(m.records, *attendance)
	return nil
}

// inject 绕过唯一判定直接插入，用于构造完整性故障
func (m *mockAttendanceRepo) inject(attendance model.Attendance) {
	attendance.AttendanceID = m.nextID
	m.nextID++
	m.records = append(m.records, attendance)
}

func (m *mockAttendanceRepo) ListByKey(_ context.Context, studentID int64, classID int, date time.Time, slotID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.StudentID == studentID && r.ClassID == classID &&
			r.Date.Format("2006-01-02") == date.Format("2006-01-02") && r.SlotID == slotID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByClassDate(_ context.Context, classID int, section string, date time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.ClassID == classID && r.Section == section &&
			r.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) List(_ context.Context, req *dto.AttendanceListRequest) ([]model.Attendance, int64, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if req.ClassID > 0 && r.ClassID != req.ClassID {
			continue
		}
		if req.Section != "" && r.Section != req.Section {
			continue
		}
		if req.StudentID > 0 && r.StudentID != req.StudentID {
			continue
		}
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

// ── Mock 参照实体仓储 ──

type mockClassRepo struct {
	classes map[int]*model.Class
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[int]*model.Class)}
}

func (m *mockClassRepo) GetByID(_ context.Context, classID int) (*model.Class, error) {
	if c, ok := m.classes[classID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context, year string) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		if year == "" || c.AcademicYear == year {
			result = append(result, *c)
		}
	}
	return result, nil
}

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) GetByID(_ context.Context, teacherID string) (*model.Teacher, error) {
	if t, ok := m.teachers[teacherID]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockStudentRepo struct {
	students map[int64]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[int64]*model.Student)}
}

func (m *mockStudentRepo) GetByID(_ context.Context, studentID int64) (*model.Student, error) {
	if s, ok := m.students[studentID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListByClass(_ context.Context, classID int, section string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.ClassID != nil && *s.ClassID == classID && s.Section != nil && *s.Section == section && s.IsActive {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	if s, ok := m.subjects[code]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListAll(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	return result, nil
}
