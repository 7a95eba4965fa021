package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/config"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/model"
	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/repository"
)

// ── 周历模块业务错误 ──

var (
	ErrClassNotFound      = errors.New("班级不存在")
	ErrTeacherNotFound    = errors.New("教师不存在")
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrStudentNotAssigned = errors.New("学生未分配班级")
)

// CalendarService 周历解析业务接口
type CalendarService interface {
	// 班级视角：解析指定周偏移的周一至周六
	ResolveClassWeek(ctx context.Context, classID int, section, academicYear string, weekOffset int) (*dto.ResolvedWeekResponse, error)
	// 教师视角：汇总教师分散在各班级的节次
	ResolveTeacherWeek(ctx context.Context, teacherID, academicYear string, weekOffset int) (*dto.TeacherWeekResponse, error)
	// 学生视角：按学生的班级分配解析
	ResolveStudentWeek(ctx context.Context, studentID int64, academicYear string, weekOffset int) (*dto.StudentWeekResponse, error)
	// 单日解析：考勤节次匹配使用
	ResolveClassDay(ctx context.Context, classID int, section, academicYear string, date time.Time) (*dto.ResolvedDay, []string, error)
	// 学校时区当前时间
	Now() time.Time
}

type calendarService struct {
	repo   *repository.Repository
	school *config.SchoolConfig
	logger *zap.Logger
	now    func() time.Time // 可注入时钟，周边界测试用
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{
		repo:   repo,
		school: &cfg.School,
		logger: logger,
		now:    time.Now,
	}
}

func (s *calendarService) Now() time.Time {
	return s.now().In(s.school.Location())
}

// weekAnchor 解析锚点：班级视角或教师视角二选一
type weekAnchor struct {
	classID   int
	section   string
	teacherID string // 非空即为教师视角
}

// matchesException 判断例外是否落在锚点作用域内
// 教师视角：任何指明该教师为监考/负责教师的例外均生效，无论班级
func (a weekAnchor) matchesException(e *model.ScheduleException) bool {
	if a.teacherID != "" {
		return e.TeacherID != nil && *e.TeacherID == a.teacherID
	}
	return e.AppliesToClass(a.classID, a.section)
}

// ════════════════════════════════════════════════════════════
// 周界计算 — 周一锚定，周日显式归为上一周的第 7 天
// ════════════════════════════════════════════════════════════

// weekMonday 返回目标周的周一（学校时区零点）
func (s *calendarService) weekMonday(weekOffset int) time.Time {
	loc := s.school.Location()
	now := s.now().In(loc)
	// 周日按第 7 天处理：offset=0 时周日仍属于已过去的这一周
	wd := model.ISOWeekday(now)
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -(wd - 1)).
		AddDate(0, 0, weekOffset*7)
	return monday
}

func (s *calendarService) buildWeekInfo(monday time.Time, weekOffset int) dto.WeekInfo {
	saturday := monday.AddDate(0, 0, 5)
	return dto.WeekInfo{
		Offset:        weekOffset,
		StartDate:     monday.Format("2006-01-02"),
		EndDate:       saturday.Format("2006-01-02"),
		IsCurrentWeek: weekOffset == 0,
		WeekLabel:     monday.Format("Jan 02") + " - " + saturday.Format("Jan 02, 2006"),
	}
}

// emptyWeek 构造 6 个空白教学日（失控偏移量或空节次目录的降级形态）
func emptyWeek(monday time.Time) []dto.ResolvedDay {
	days := make([]dto.ResolvedDay, 0, 6)
	for i := 0; i < 6; i++ {
		days = append(days, dto.ResolvedDay{
			Date:      monday.AddDate(0, 0, i).Format("2006-01-02"),
			DayOfWeek: i + 1,
			DayType:   dto.DayTypeInstructional,
			Periods:   []dto.ResolvedPeriod{},
		})
	}
	return days
}

// ════════════════════════════════════════════════════════════
// 解析引擎 — 先做 4 次区间读，合并本身是纯计算
// ════════════════════════════════════════════════════════════

// resolveDates 对一组连续日期执行解析
// 返回值第二项为数据质量警告（例外重叠等），不阻断解析
func (s *calendarService) resolveDates(ctx context.Context, anchor weekAnchor, academicYear string, dates []time.Time) ([]dto.ResolvedDay, []string, error) {
	start, end := dates[0], dates[len(dates)-1]

	// 1. 节次目录（空目录是学年初的正常状态，降级为空白日）
	slots, err := s.repo.TimeSlot.ListActive(ctx, academicYear)
	if err != nil {
		s.logger.Error("查询节次目录失败", zap.Error(err))
		return nil, nil, err
	}

	// 2. 周期课表
	var entries []model.ScheduleEntry
	if anchor.teacherID != "" {
		entries, err = s.repo.ScheduleEntry.ListByTeacher(ctx, anchor.teacherID, academicYear)
	} else {
		entries, err = s.repo.ScheduleEntry.ListByClass(ctx, anchor.classID, anchor.section, academicYear)
	}
	if err != nil {
		s.logger.Error("查询周期课表失败", zap.Error(err))
		return nil, nil, err
	}

	// 3. 假日
	holidays, err := s.repo.Holiday.ListRange(ctx, start, end)
	if err != nil {
		s.logger.Error("查询假日失败", zap.Error(err))
		return nil, nil, err
	}

	// 4. 例外
	exceptions, err := s.repo.ScheduleException.ListRange(ctx, start, end, academicYear)
	if err != nil {
		s.logger.Error("查询日程例外失败", zap.Error(err))
		return nil, nil, err
	}

	// 科目名称补齐（例外记录只带 subject_code）
	subjectNames, err := s.subjectNameMap(ctx)
	if err != nil {
		s.logger.Error("查询科目表失败", zap.Error(err))
		return nil, nil, err
	}

	// ── 以下为纯合并，不再发生 I/O ──

	var warnings []string

	holidayByDate := make(map[string]*model.Holiday, len(holidays))
	for i := range holidays {
		holidayByDate[holidays[i].Date.Format("2006-01-02")] = &holidays[i]
	}

	// 周期课表行按 (星期几, 节次) 索引；存储层唯一约束保证至多一条
	entryByDaySlot := make(map[int]map[string]*model.ScheduleEntry)
	for i := range entries {
		e := &entries[i]
		if entryByDaySlot[e.DayOfWeek] == nil {
			entryByDaySlot[e.DayOfWeek] = make(map[string]*model.ScheduleEntry)
		}
		entryByDaySlot[e.DayOfWeek][e.SlotID] = e
	}

	// 例外按 (日期, 节次) 与 (日期, 全天) 分桶；同桶多条按 created_at 取最新，
	// created_at 相同按 id 较大者（last-write-wins），并记录警告
	slotExc := make(map[string]map[string]*model.ScheduleException)
	dayExc := make(map[string]*model.ScheduleException)
	overlapCount := make(map[string]int)
	for i := range exceptions {
		e := &exceptions[i]
		if !anchor.matchesException(e) {
			continue
		}
		dateStr := e.Date.Format("2006-01-02")
		if e.SlotID == nil {
			if prev := dayExc[dateStr]; prev != nil {
				overlapCount[dateStr+"/全天"]++
				if !laterWins(prev, e) {
					continue
				}
			}
			dayExc[dateStr] = e
			continue
		}
		if slotExc[dateStr] == nil {
			slotExc[dateStr] = make(map[string]*model.ScheduleException)
		}
		if prev := slotExc[dateStr][*e.SlotID]; prev != nil {
			overlapCount[dateStr+"/"+*e.SlotID]++
			if !laterWins(prev, e) {
				continue
			}
		}
		slotExc[dateStr][*e.SlotID] = e
	}
	for key, n := range overlapCount {
		msg := fmt.Sprintf("例外记录重叠：%s 存在 %d 条同作用域例外，已按最新创建记录解析", key, n+1)
		warnings = append(warnings, msg)
		s.logger.Warn("日程例外重叠", zap.String("key", key), zap.Int("count", n+1))
	}

	days := make([]dto.ResolvedDay, 0, len(dates))
	for _, date := range dates {
		days = append(days, s.resolveDay(date, slots, holidayByDate, entryByDaySlot, slotExc, dayExc, subjectNames))
	}
	return days, warnings, nil
}

// laterWins 判断 next 是否应覆盖 prev（created_at 较新者胜，相同则 id 较大者胜）
func laterWins(prev, next *model.ScheduleException) bool {
	if next.CreatedAt.After(prev.CreatedAt) {
		return true
	}
	if prev.CreatedAt.After(next.CreatedAt) {
		return false
	}
	return next.ID > prev.ID
}

// resolveDay 解析单个日期：全日假独占，半日假截断，其余逐节次定优先级
func (s *calendarService) resolveDay(
	date time.Time,
	slots []model.TimeSlot,
	holidayByDate map[string]*model.Holiday,
	entryByDaySlot map[int]map[string]*model.ScheduleEntry,
	slotExc map[string]map[string]*model.ScheduleException,
	dayExc map[string]*model.ScheduleException,
	subjectNames map[string]string,
) dto.ResolvedDay {
	dateStr := date.Format("2006-01-02")
	dow := model.ISOWeekday(date)
	day := dto.ResolvedDay{
		Date:      dateStr,
		DayOfWeek: dow,
		DayType:   dto.DayTypeInstructional,
		Periods:   make([]dto.ResolvedPeriod, 0, len(slots)),
	}

	holiday := holidayByDate[dateStr]

	// 全日假：所有节次置空并附假日名，不再看课表与例外
	if holiday != nil && holiday.Type == model.HolidayTypeFull {
		day.DayType = dto.DayTypeHoliday
		day.HolidayName = holiday.Name
		for _, slot := range slots {
			day.Periods = append(day.Periods, dto.ResolvedPeriod{
				SlotID:    slot.SlotID,
				SlotName:  slot.Name,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Content:   dto.EmptyContent(holiday.Name),
			})
		}
		return day
	}

	halfHoliday := holiday != nil && holiday.Type == model.HolidayTypeHalf
	if halfHoliday {
		day.DayType = dto.DayTypeHalfHoliday
		day.HolidayName = holiday.Name
	}

	for _, slot := range slots {
		// 半日假：截止时间及之后开始的节次置空
		// "HH:MM:SS" 定长格式可直接字符串比较
		if halfHoliday && slot.StartTime >= s.school.HalfDayCutoff {
			day.Periods = append(day.Periods, dto.ResolvedPeriod{
				SlotID:    slot.SlotID,
				SlotName:  slot.Name,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Content:   dto.EmptyContent(holiday.Name),
			})
			continue
		}

		day.Periods = append(day.Periods, dto.ResolvedPeriod{
			SlotID:    slot.SlotID,
			SlotName:  slot.Name,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Content:   s.resolveSlotContent(dateStr, dow, slot.SlotID, entryByDaySlot, slotExc, dayExc, subjectNames),
		})
	}
	return day
}

// resolveSlotContent 单节次优先级：定节例外 > 全天例外 > 周期课表 > 空
func (s *calendarService) resolveSlotContent(
	dateStr string,
	dow int,
	slotID string,
	entryByDaySlot map[int]map[string]*model.ScheduleEntry,
	slotExc map[string]map[string]*model.ScheduleException,
	dayExc map[string]*model.ScheduleException,
	subjectNames map[string]string,
) dto.PeriodContent {
	if bySlot := slotExc[dateStr]; bySlot != nil {
		if e := bySlot[slotID]; e != nil {
			return exceptionContent(e, subjectNames)
		}
	}
	if e := dayExc[dateStr]; e != nil {
		return exceptionContent(e, subjectNames)
	}
	if bySlot := entryByDaySlot[dow]; bySlot != nil {
		if entry := bySlot[slotID]; entry != nil {
			return entryContent(entry, subjectNames)
		}
	}
	return dto.EmptyContent("")
}

func exceptionContent(e *model.ScheduleException, subjectNames map[string]string) dto.PeriodContent {
	if e.Type == model.ExceptionTypeExam {
		code, name := "", ""
		if e.SubjectCode != nil {
			code = *e.SubjectCode
			name = subjectDisplayName(code, subjectNames)
		}
		return dto.ExamContent(e.Title, code, name, e.ClassID)
	}
	return dto.EventContent(e.Title, e.ClassID)
}

// entryContent 周期课表行转节次内容
// 保留科目码 LUNCH/STUDY 映射为午餐/自习；科目或教师缺失降级为空节次
func entryContent(entry *model.ScheduleEntry, subjectNames map[string]string) dto.PeriodContent {
	if entry.SubjectCode == nil {
		return dto.EmptyContent("")
	}
	switch *entry.SubjectCode {
	case model.SubjectCodeLunch:
		return dto.LunchContent()
	case model.SubjectCodeStudy:
		return dto.StudyContent()
	}
	if entry.TeacherID == nil {
		return dto.EmptyContent("")
	}
	teacherName := ""
	if entry.Teacher != nil {
		teacherName = entry.Teacher.Name
	}
	subjectName := ""
	if entry.Subject != nil {
		subjectName = entry.Subject.SubjectName
	} else {
		subjectName = subjectDisplayName(*entry.SubjectCode, subjectNames)
	}
	return dto.RegularContent(*entry.SubjectCode, subjectName, *entry.TeacherID, teacherName)
}

func subjectDisplayName(code string, subjectNames map[string]string) string {
	if name, ok := subjectNames[code]; ok {
		return name
	}
	return code
}

func (s *calendarService) subjectNameMap(ctx context.Context) (map[string]string, error) {
	subjects, err := s.repo.Subject.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(subjects))
	for _, sub := range subjects {
		m[sub.SubjectCode] = sub.SubjectName
	}
	return m, nil
}

// ════════════════════════════════════════════════════════════
// 对外操作
// ════════════════════════════════════════════════════════════

func (s *calendarService) resolveWeek(ctx context.Context, anchor weekAnchor, academicYear string, weekOffset int) (*dto.ResolvedWeekResponse, error) {
	// 失控偏移量：按当前周的日期轮廓返回空白周而非报错
	if weekOffset > s.school.WeekOffsetLimit || weekOffset < -s.school.WeekOffsetLimit {
		s.logger.Warn("周偏移量超出上限，返回空白周",
			zap.Int("week_offset", weekOffset),
			zap.Int("limit", s.school.WeekOffsetLimit),
		)
		monday := s.weekMonday(0)
		return &dto.ResolvedWeekResponse{
			Days:     emptyWeek(monday),
			WeekInfo: s.buildWeekInfo(monday, weekOffset),
		}, nil
	}

	monday := s.weekMonday(weekOffset)

	dates := make([]time.Time, 0, 6)
	for i := 0; i < 6; i++ {
		dates = append(dates, monday.AddDate(0, 0, i))
	}

	days, warnings, err := s.resolveDates(ctx, anchor, academicYear, dates)
	if err != nil {
		return nil, err
	}
	return &dto.ResolvedWeekResponse{
		Days:     days,
		WeekInfo: s.buildWeekInfo(monday, weekOffset),
		Warnings: warnings,
	}, nil
}

func (s *calendarService) ResolveClassWeek(ctx context.Context, classID int, section, academicYear string, weekOffset int) (*dto.ResolvedWeekResponse, error) {
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, err
	}
	return s.resolveWeek(ctx, weekAnchor{classID: classID, section: section}, academicYear, weekOffset)
}

func (s *calendarService) ResolveTeacherWeek(ctx context.Context, teacherID, academicYear string, weekOffset int) (*dto.TeacherWeekResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}

	week, err := s.resolveWeek(ctx, weekAnchor{teacherID: teacherID}, academicYear, weekOffset)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, day := range week.Days {
		for _, p := range day.Periods {
			switch p.Content.Kind {
			case dto.PeriodRegular, dto.PeriodExam, dto.PeriodEvent:
				total++
			}
		}
	}
	return &dto.TeacherWeekResponse{
		ResolvedWeekResponse: *week,
		TeacherInfo: dto.TeacherWeekInfo{
			TeacherID:    teacher.TeacherID,
			Name:         teacher.Name,
			TotalPeriods: total,
		},
	}, nil
}

func (s *calendarService) ResolveStudentWeek(ctx context.Context, studentID int64, academicYear string, weekOffset int) (*dto.StudentWeekResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}
	if student.ClassID == nil || student.Section == nil {
		return nil, ErrStudentNotAssigned
	}

	week, err := s.resolveWeek(ctx, weekAnchor{classID: *student.ClassID, section: *student.Section}, academicYear, weekOffset)
	if err != nil {
		return nil, err
	}
	return &dto.StudentWeekResponse{
		ResolvedWeekResponse: *week,
		StudentInfo: dto.StudentBrief{
			StudentID: student.StudentID,
			Name:      student.Name,
			ClassID:   *student.ClassID,
			Section:   *student.Section,
		},
	}, nil
}

// ResolveClassDay 解析单个日期，供考勤节次匹配调用
func (s *calendarService) ResolveClassDay(ctx context.Context, classID int, section, academicYear string, date time.Time) (*dto.ResolvedDay, []string, error) {
	days, warnings, err := s.resolveDates(ctx, weekAnchor{classID: classID, section: section}, academicYear, []time.Time{date})
	if err != nil {
		return nil, nil, err
	}
	return &days[0], warnings, nil
}
