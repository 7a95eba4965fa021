package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/service"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CalendarService ──

type mockCalendarService struct {
	classWeekResult   *dto.ResolvedWeekResponse
	classWeekErr      error
	teacherWeekResult *dto.TeacherWeekResponse
	teacherWeekErr    error
	studentWeekResult *dto.StudentWeekResponse
	studentWeekErr    error
	lastWeekOffset    int
}

func (m *mockCalendarService) ResolveClassWeek(_ context.Context, _ int, _, _ string, weekOffset int) (*dto.ResolvedWeekResponse, error) {
	m.lastWeekOffset = weekOffset
	return m.classWeekResult, m.classWeekErr
}
func (m *mockCalendarService) ResolveTeacherWeek(_ context.Context, _, _ string, weekOffset int) (*dto.TeacherWeekResponse, error) {
	m.lastWeekOffset = weekOffset
	return m.teacherWeekResult, m.teacherWeekErr
}
func (m *mockCalendarService) ResolveStudentWeek(_ context.Context, _ int64, _ string, weekOffset int) (*dto.StudentWeekResponse, error) {
	m.lastWeekOffset = weekOffset
	return m.studentWeekResult, m.studentWeekErr
}
func (m *mockCalendarService) ResolveClassDay(_ context.Context, _ int, _, _ string, _ time.Time) (*dto.ResolvedDay, []string, error) {
	return nil, nil, nil
}
func (m *mockCalendarService) Now() time.Time {
	return time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	classScheduleResult   []dto.ScheduleEntryResponse
	classScheduleErr      error
	teacherScheduleResult []dto.ScheduleEntryResponse
	teacherScheduleErr    error
	createResult          *dto.ScheduleEntryResponse
	createConflict        *dto.ScheduleConflictResponse
	createErr             error
	updateResult          *dto.ScheduleEntryResponse
	updateConflict        *dto.ScheduleConflictResponse
	updateErr             error
	deleteErr             error
}

func (m *mockScheduleService) GetClassSchedule(_ context.Context, _ int, _, _ string) ([]dto.ScheduleEntryResponse, error) {
	return m.classScheduleResult, m.classScheduleErr
}
func (m *mockScheduleService) GetTeacherSchedule(_ context.Context, _, _ string) ([]dto.ScheduleEntryResponse, error) {
	return m.teacherScheduleResult, m.teacherScheduleErr
}
func (m *mockScheduleService) Create(_ context.Context, _ *dto.CreateScheduleEntryRequest) (*dto.ScheduleEntryResponse, *dto.ScheduleConflictResponse, error) {
	return m.createResult, m.createConflict, m.createErr
}
func (m *mockScheduleService) Update(_ context.Context, _ int64, _ *dto.UpdateScheduleEntryRequest) (*dto.ScheduleEntryResponse, *dto.ScheduleConflictResponse, error) {
	return m.updateResult, m.updateConflict, m.updateErr
}
func (m *mockScheduleService) Delete(_ context.Context, _ int64) error {
	return m.deleteErr
}

// ── Mock ExceptionService ──

type mockExceptionService struct {
	listResult     []dto.ExceptionResponse
	listErr        error
	createResult   *dto.ExceptionResponse
	createErr      error
	updateResult   *dto.ExceptionResponse
	updateErr      error
	deleteErr      error
	overlapsResult []dto.ExceptionOverlapResponse
	overlapsErr    error
	examsResult    []dto.UpcomingExamResponse
	examsErr       error
	lastClassID    *int
}

func (m *mockExceptionService) List(_ context.Context, _ *dto.ExceptionListRequest) ([]dto.ExceptionResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockExceptionService) Create(_ context.Context, _ *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockExceptionService) Update(_ context.Context, _ int64, _ *dto.UpdateExceptionRequest) (*dto.ExceptionResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockExceptionService) Delete(_ context.Context, _ int64) error {
	return m.deleteErr
}
func (m *mockExceptionService) Overlaps(_ context.Context, _ string) ([]dto.ExceptionOverlapResponse, error) {
	return m.overlapsResult, m.overlapsErr
}
func (m *mockExceptionService) UpcomingExams(_ context.Context, classID *int, _ string) ([]dto.UpcomingExamResponse, error) {
	m.lastClassID = classID
	return m.examsResult, m.examsErr
}

// ── Mock HolidayService ──

type mockHolidayService struct {
	listResult     []dto.HolidayResponse
	listErr        error
	createResult   []dto.HolidayResponse
	createErr      error
	updateResult   *dto.HolidayResponse
	updateErr      error
	deleteErr      error
	upcomingResult []dto.HolidayResponse
	upcomingErr    error
}

func (m *mockHolidayService) List(_ context.Context, _, _ string) ([]dto.HolidayResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockHolidayService) Create(_ context.Context, _ *dto.CreateHolidayRequest) ([]dto.HolidayResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockHolidayService) Update(_ context.Context, _ string, _ *dto.UpdateHolidayRequest) (*dto.HolidayResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockHolidayService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockHolidayService) Upcoming(_ context.Context, _ int) ([]dto.HolidayResponse, error) {
	return m.upcomingResult, m.upcomingErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	todayResult *dto.TodayPeriodsResponse
	todayErr    error
	markResult  *dto.AttendanceResponse
	markErr     error
	bulkResult  *dto.BulkMarkAttendanceResponse
	bulkErr     error
	listResult  *dto.AttendanceListResponse
	listErr     error
}

func (m *mockAttendanceService) TodayPeriods(_ context.Context, _ int, _ string, _ int64, _ string) (*dto.TodayPeriodsResponse, error) {
	return m.todayResult, m.todayErr
}
func (m *mockAttendanceService) Mark(_ context.Context, _ *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	return m.markResult, m.markErr
}
func (m *mockAttendanceService) BulkMark(_ context.Context, _ *dto.BulkMarkAttendanceRequest) (*dto.BulkMarkAttendanceResponse, error) {
	return m.bulkResult, m.bulkErr
}
func (m *mockAttendanceService) List(_ context.Context, _ *dto.AttendanceListRequest) (*dto.AttendanceListResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock TimeSlotService ──

type mockTimeSlotService struct {
	listResult   []dto.TimeSlotResponse
	listErr      error
	createResult *dto.TimeSlotResponse
	createErr    error
	updateResult *dto.TimeSlotResponse
	updateErr    error
	deleteErr    error
}

func (m *mockTimeSlotService) List(_ context.Context, _ string) ([]dto.TimeSlotResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTimeSlotService) Create(_ context.Context, _ *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTimeSlotService) Update(_ context.Context, _, _ string, _ *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTimeSlotService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	xlsxBuf  *bytes.Buffer
	xlsxName string
	xlsxErr  error
	icsBuf   *bytes.Buffer
	icsName  string
	icsErr   error
}

func (m *mockExportService) ExportWeekXLSX(_ context.Context, _ int, _, _ string, _ int) (*bytes.Buffer, string, error) {
	return m.xlsxBuf, m.xlsxName, m.xlsxErr
}
func (m *mockExportService) ExportWeekICS(_ context.Context, _ int, _, _ string, _ int) (*bytes.Buffer, string, error) {
	return m.icsBuf, m.icsName, m.icsErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func sixEmptyDays() []dto.ResolvedDay {
	days := make([]dto.ResolvedDay, 6)
	for i := range days {
		days[i] = dto.ResolvedDay{
			Date:      time.Date(2026, 1, 5+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			DayOfWeek: i + 1,
			DayType:   dto.DayTypeInstructional,
			Periods:   []dto.ResolvedPeriod{},
		}
	}
	return days
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_GetClassWeek_Success(t *testing.T) {
	mock := &mockCalendarService{
		classWeekResult: &dto.ResolvedWeekResponse{
			Days:     sixEmptyDays(),
			WeekInfo: dto.WeekInfo{Offset: 0, IsCurrentWeek: true},
		},
	}
	h := NewCalendarHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar-week/101/2025-2026/0?section=A", nil)

	r := gin.New()
	r.GET("/calendar-week/:classId/:academicYear/:weekOffset", h.GetClassWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("期望 code 0，实际=%d", resp.Code)
	}
	if mock.lastWeekOffset != 0 {
		t.Errorf("期望 weekOffset=0，实际=%d", mock.lastWeekOffset)
	}
}

func TestCalendarHandler_GetClassWeek_NonIntegerClassID(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar-week/abc/2025-2026/0", nil)

	r := gin.New()
	r.GET("/calendar-week/:classId/:academicYear/:weekOffset", h.GetClassWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("期望 code 10001，实际=%d", resp.Code)
	}
}

// 非整数周偏移不报 400：按失控偏移传给 Service，由其返回空白周
func TestCalendarHandler_GetClassWeek_NonIntegerOffset(t *testing.T) {
	mock := &mockCalendarService{
		classWeekResult: &dto.ResolvedWeekResponse{Days: sixEmptyDays()},
	}
	h := NewCalendarHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar-week/101/2025-2026/garbage", nil)

	r := gin.New()
	r.GET("/calendar-week/:classId/:academicYear/:weekOffset", h.GetClassWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if mock.lastWeekOffset != invalidWeekOffset {
		t.Errorf("期望哨兵偏移 %d，实际=%d", invalidWeekOffset, mock.lastWeekOffset)
	}
}

func TestCalendarHandler_GetClassWeek_ClassNotFound(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{classWeekErr: service.ErrClassNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar-week/999/2025-2026/0", nil)

	r := gin.New()
	r.GET("/calendar-week/:classId/:academicYear/:weekOffset", h.GetClassWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20001 {
		t.Errorf("期望 code 20001，实际=%d", resp.Code)
	}
}

func TestCalendarHandler_GetStudentWeek_NotAssigned(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{studentWeekErr: service.ErrStudentNotAssigned})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/student-calendar-week/500001/2025-2026/0", nil)

	r := gin.New()
	r.GET("/student-calendar-week/:studentId/:academicYear/:weekOffset", h.GetStudentWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20004 {
		t.Errorf("期望 code 20004，实际=%d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_Create_Success(t *testing.T) {
	teacherID := "T1"
	mock := &mockScheduleService{
		createResult: &dto.ScheduleEntryResponse{ID: 1, ClassID: 101, Section: "A", SlotID: "P1"},
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedule", jsonBody(dto.CreateScheduleEntryRequest{
		ClassID:      101,
		Section:      "A",
		DayOfWeek:    1,
		SlotID:       "P1",
		TeacherID:    &teacherID,
		AcademicYear: "2025-2026",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedule", h.CreateEntry)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际=%d", w.Code)
	}
}

func TestScheduleHandler_Create_TeacherConflict(t *testing.T) {
	teacherID := "T1"
	mock := &mockScheduleService{
		createErr: service.ErrScheduleConflict,
		createConflict: &dto.ScheduleConflictResponse{
			TeacherID: "T1",
			Conflict:  dto.ScheduleEntryResponse{ID: 7, ClassID: 202, SlotID: "P1"},
		},
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedule", jsonBody(dto.CreateScheduleEntryRequest{
		ClassID:      101,
		Section:      "A",
		DayOfWeek:    1,
		SlotID:       "P1",
		TeacherID:    &teacherID,
		AcademicYear: "2025-2026",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedule", h.CreateEntry)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 21003 {
		t.Errorf("期望 code 21003，实际=%d", resp.Code)
	}
	if resp.Data == nil {
		t.Error("期望响应携带冲突条目详情")
	}
}

func TestScheduleHandler_Create_BadJSON(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedule", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedule", h.CreateEntry)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

func TestScheduleHandler_GetClassSchedule_MissingYear(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/schedule/101/A", nil)

	r := gin.New()
	r.GET("/schedule/:classId/:section", h.GetClassSchedule)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExceptionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExceptionHandler_UpcomingExams_AllClasses(t *testing.T) {
	mock := &mockExceptionService{
		examsResult: []dto.UpcomingExamResponse{
			{Date: "2026-01-08", DayName: "Thursday", Title: "Unit Test", Subjects: []string{"MATH"}},
		},
	}
	h := NewExceptionHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/upcoming-exams/all?academicYear=2025-2026", nil)

	r := gin.New()
	r.GET("/upcoming-exams/:classId", h.UpcomingExams)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if mock.lastClassID != nil {
		t.Errorf("期望 classID=nil（全部班级），实际=%v", *mock.lastClassID)
	}
}

func TestExceptionHandler_UpcomingExams_SpecificClass(t *testing.T) {
	mock := &mockExceptionService{}
	h := NewExceptionHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/upcoming-exams/101?academicYear=2025-2026", nil)

	r := gin.New()
	r.GET("/upcoming-exams/:classId", h.UpcomingExams)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if mock.lastClassID == nil || *mock.lastClassID != 101 {
		t.Errorf("期望 classID=101，实际=%v", mock.lastClassID)
	}
}

func TestExceptionHandler_Delete_NotFound(t *testing.T) {
	h := NewExceptionHandler(&mockExceptionService{deleteErr: service.ErrExceptionNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/exceptions/42", nil)

	r := gin.New()
	r.DELETE("/exceptions/:id", h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 22001 {
		t.Errorf("期望 code 22001，实际=%d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// HolidayHandler Tests
// ═══════════════════════════════════════════════════════════

func TestHolidayHandler_Create_Success(t *testing.T) {
	mock := &mockHolidayService{
		createResult: []dto.HolidayResponse{
			{Date: "2026-01-14", DayName: "Wednesday", Name: "Pongal", Type: "full"},
		},
	}
	h := NewHolidayHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/holidays", jsonBody(dto.CreateHolidayRequest{
		Name:      "Pongal",
		StartDate: "2026-01-14",
		Type:      "full",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/holidays", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际=%d", w.Code)
	}
}

func TestHolidayHandler_Create_Duplicate(t *testing.T) {
	h := NewHolidayHandler(&mockHolidayService{createErr: service.ErrHolidayExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/holidays", jsonBody(dto.CreateHolidayRequest{
		Name:      "Pongal",
		StartDate: "2026-01-14",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/holidays", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 23002 {
		t.Errorf("期望 code 23002，实际=%d", resp.Code)
	}
}

func TestHolidayHandler_Upcoming_InvalidLimit(t *testing.T) {
	h := NewHolidayHandler(&mockHolidayService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/upcoming-holidays/101?limit=-3", nil)

	r := gin.New()
	r.GET("/upcoming-holidays/:classId", h.Upcoming)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_Mark_Success(t *testing.T) {
	mock := &mockAttendanceService{
		markResult: &dto.AttendanceResponse{AttendanceID: 1, StudentID: 500001, Status: "present"},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.MarkAttendanceRequest{
		StudentID: 500001,
		ClassID:   101,
		Section:   "A",
		Date:      "2026-01-05",
		SlotID:    "P1",
		Status:    "present",
		MarkedBy:  "T1",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", h.Mark)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际=%d", w.Code)
	}
}

// 重复标记是预期内冲突：409 而非 500
func TestAttendanceHandler_Mark_AlreadyMarked(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{markErr: service.ErrAttendanceAlreadyMarked})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.MarkAttendanceRequest{
		StudentID: 500001,
		ClassID:   101,
		Section:   "A",
		Date:      "2026-01-05",
		SlotID:    "P1",
		Status:    "present",
		MarkedBy:  "T1",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", h.Mark)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 25001 {
		t.Errorf("期望 code 25001，实际=%d", resp.Code)
	}
}

// 同键多行是数据完整性故障：500
func TestAttendanceHandler_TodayPeriods_DuplicateRowsFault(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{todayErr: service.ErrDuplicateAttendance})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance/today/101/A?student_id=500001&academicYear=2025-2026", nil)

	r := gin.New()
	r.GET("/attendance/today/:classId/:section", h.TodayPeriods)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("期望 500，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 25002 {
		t.Errorf("期望 code 25002，实际=%d", resp.Code)
	}
}

func TestAttendanceHandler_BulkMark_EmptyRecords(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/bulk", jsonBody(dto.BulkMarkAttendanceRequest{
		ClassID:  101,
		Section:  "A",
		Date:     "2026-01-05",
		SlotID:   "P1",
		MarkedBy: "T1",
		Records:  []dto.BulkMarkRecord{},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/bulk", h.BulkMark)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

func TestAttendanceHandler_BulkMark_PartialResult(t *testing.T) {
	mock := &mockAttendanceService{
		bulkResult: &dto.BulkMarkAttendanceResponse{
			Marked:  2,
			Skipped: 1,
			Failed:  []dto.BulkMarkFailure{{StudentID: 500003, Reason: "数据库写入失败"}},
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/bulk", jsonBody(dto.BulkMarkAttendanceRequest{
		ClassID:  101,
		Section:  "A",
		Date:     "2026-01-05",
		SlotID:   "P1",
		MarkedBy: "T1",
		Records: []dto.BulkMarkRecord{
			{StudentID: 500001, Status: "present"},
			{StudentID: 500002, Status: "absent"},
			{StudentID: 500003, Status: "present"},
			{StudentID: 500004, Status: "late"},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/bulk", h.BulkMark)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	var resp struct {
		Code int                            `json:"code"`
		Data dto.BulkMarkAttendanceResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Marked != 2 || resp.Data.Skipped != 1 || len(resp.Data.Failed) != 1 {
		t.Errorf("期望 marked=2 skipped=1 failed=1，实际=%+v", resp.Data)
	}
}

// 学生角色强制只查本人记录：query 中的 student_id 被 Token 中的覆盖
func TestAttendanceHandler_List_StudentScopedToSelf(t *testing.T) {
	mock := &mockAttendanceService{
		listResult: &dto.AttendanceListResponse{Page: 1, PageSize: 50},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance?student_id=999999", nil)

	r := gin.New()
	r.GET("/attendance", func(c *gin.Context) {
		c.Set("role", "student")
		c.Set("student_id", int64(500001))
	}, h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
}

func TestAttendanceHandler_List_NoRole(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance", nil)

	r := gin.New()
	r.GET("/attendance", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TimeSlotHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTimeSlotHandler_Delete_MissingYear(t *testing.T) {
	h := NewTimeSlotHandler(&mockTimeSlotService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/time-slots/P1", nil)

	r := gin.New()
	r.DELETE("/time-slots/:slotId", h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

func TestTimeSlotHandler_Create_DuplicateOrder(t *testing.T) {
	h := NewTimeSlotHandler(&mockTimeSlotService{createErr: service.ErrDuplicateSlotOrder})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/time-slots", jsonBody(dto.CreateTimeSlotRequest{
		SlotID:       "P9",
		AcademicYear: "2025-2026",
		Name:         "Period 9",
		StartTime:    "15:00:00",
		EndTime:      "15:40:00",
		OrderIndex:   3,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/time-slots", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24003 {
		t.Errorf("期望 code 24003，实际=%d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportWeek_XLSXHeaders(t *testing.T) {
	mock := &mockExportService{
		xlsxBuf:  bytes.NewBufferString("fake-xlsx-bytes"),
		xlsxName: "calendar-week_101-A_2026-01-05.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/calendar-week/101/2025-2026/0?format=xlsx", nil)

	r := gin.New()
	r.GET("/export/calendar-week/:classId/:academicYear/:weekOffset", h.ExportWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd != `attachment; filename="calendar-week_101-A_2026-01-05.xlsx"` {
		t.Errorf("Content-Disposition 不符，实际=%s", cd)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("Content-Type 不符，实际=%s", ct)
	}
}

func TestExportHandler_ExportWeek_ICS(t *testing.T) {
	mock := &mockExportService{
		icsBuf:  bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		icsName: "calendar-week_101-A_2026-01-05.ics",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/calendar-week/101/2025-2026/0?format=ics", nil)

	r := gin.New()
	r.GET("/export/calendar-week/:classId/:academicYear/:weekOffset", h.ExportWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Error("期望响应体为 iCalendar 内容")
	}
}

func TestExportHandler_ExportWeek_UnknownFormat(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/calendar-week/101/2025-2026/0?format=pdf", nil)

	r := gin.New()
	r.GET("/export/calendar-week/:classId/:academicYear/:weekOffset", h.ExportWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}
