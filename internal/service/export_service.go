package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/internal/dto"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成导出文件失败")

// ExportService 周历导出业务接口
//
// 设计说明：
//   - 导出对象是解析后的周历（含假日与例外覆盖），不是原始周期课表
//   - Excel：节次为行、周一至周六为列的总览网格
//   - ICS：每个非空节次一个 VEVENT，可订阅进日历客户端
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	ExportWeekXLSX(ctx context.Context, classID int, section, academicYear string, weekOffset int) (*bytes.Buffer, string, error)
	ExportWeekICS(ctx context.Context, classID int, section, academicYear string, weekOffset int) (*bytes.Buffer, string, error)
}

type exportService struct {
	calendar CalendarService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(calendar CalendarService, logger *zap.Logger) ExportService {
	return &exportService{calendar: calendar, logger: logger}
}

var exportDayNames = [6]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// cellText 单元格/事件摘要文本
func cellText(content dto.PeriodContent) string {
	switch content.Kind {
	case dto.PeriodRegular:
		if content.TeacherName != "" {
			return fmt.Sprintf("%s (%s)", content.SubjectName, content.TeacherName)
		}
		return content.SubjectName
	case dto.PeriodExam:
		if content.SubjectName != "" {
			return fmt.Sprintf("Exam: %s (%s)", content.Title, content.SubjectName)
		}
		return "Exam: " + content.Title
	case dto.PeriodEvent:
		return "Event: " + content.Title
	case dto.PeriodLunch:
		return "Lunch"
	case dto.PeriodStudy:
		return "Study"
	default:
		if content.Title != "" {
			return content.Title
		}
		return "-"
	}
}

// ═══════════════════════════════════════════════════════════
// ExportWeekXLSX — 解析周历导出为 Excel 网格
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行头：节次名 + 起止时间
//   - 列头：Mon ~ Sat（附日期），假日列头附假日名
//   - 单元格：节次内容摘要

func (s *exportService) ExportWeekXLSX(ctx context.Context, classID int, section, academicYear string, weekOffset int) (*bytes.Buffer, string, error) {
	week, err := s.calendar.ResolveClassWeek(ctx, classID, section, academicYear, weekOffset)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Week"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 14)
	for i := 0; i < 6; i++ {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetColWidth(sheetName, col, col, 24)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("Class %d-%s — %s", classID, section, week.WeekInfo.WeekLabel)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "H1")

	// 表头行
	f.SetCellValue(sheetName, "A2", "Period")
	f.SetCellValue(sheetName, "B2", "Time")
	for i, day := range week.Days {
		col, _ := excelize.ColumnNumberToName(3 + i)
		header := fmt.Sprintf("%s %s", exportDayNames[i], day.Date)
		if day.HolidayName != "" {
			header += "\n" + day.HolidayName
		}
		f.SetCellValue(sheetName, col+"2", header)
	}
	f.SetCellStyle(sheetName, "A2", "H2", headerStyle)

	// 行集合按各日节次求并，保持首见顺序（空目录时体面退化为无行）
	type rowDef struct {
		slotID    string
		slotName  string
		startTime string
		endTime   string
	}
	var rows []rowDef
	rowIndex := make(map[string]int)
	for _, day := range week.Days {
		for _, p := range day.Periods {
			if _, seen := rowIndex[p.SlotID]; !seen {
				rowIndex[p.SlotID] = len(rows)
				rows = append(rows, rowDef{p.SlotID, p.SlotName, p.StartTime, p.EndTime})
			}
		}
	}

	for r, row := range rows {
		excelRow := 3 + r
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", excelRow), row.slotName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", excelRow), row.startTime[:5]+"-"+row.endTime[:5])
		for c, day := range week.Days {
			col, _ := excelize.ColumnNumberToName(3 + c)
			text := "-"
			for _, p := range day.Periods {
				if p.SlotID == row.slotID {
					text = cellText(p.Content)
					break
				}
			}
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, excelRow), text)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("calendar-week_%d-%s_%s.xlsx", classID, section, week.WeekInfo.StartDate)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportWeekICS — 解析周历导出为 iCalendar (RFC 5545)
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportWeekICS(ctx context.Context, classID int, section, academicYear string, weekOffset int) (*bytes.Buffer, string, error) {
	week, err := s.calendar.ResolveClassWeek(ctx, classID, section, academicYear, weekOffset)
	if err != nil {
		return nil, "", err
	}

	loc := s.calendar.Now().Location()
	now := s.calendar.Now()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studentmanagement//calendar-week//EN")

	for _, day := range week.Days {
		for _, p := range day.Periods {
			if p.Content.Kind == dto.PeriodEmpty {
				continue
			}
			start, err1 := time.ParseInLocation("2006-01-02 15:04:05", day.Date+" "+p.StartTime, loc)
			end, err2 := time.ParseInLocation("2006-01-02 15:04:05", day.Date+" "+p.EndTime, loc)
			if err1 != nil || err2 != nil {
				s.logger.Warn("节次时间格式异常，跳过事件",
					zap.String("date", day.Date),
					zap.String("slot_id", p.SlotID),
				)
				continue
			}

			event := cal.AddEvent(uuid.NewString())
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(cellText(p.Content))
			event.SetDescription(fmt.Sprintf("Class %d-%s, %s (%s)", classID, section, p.SlotName, p.SlotID))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("calendar-week_%d-%s_%s.ics", classID, section, week.WeekInfo.StartDate)
	return buf, filename, nil
}
