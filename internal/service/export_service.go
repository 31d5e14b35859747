package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords    = errors.New("该月份无考勤记录")
	ErrExportInvalidMonth = errors.New("月份格式无效，应为 YYYY-MM")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 月度考勤表导出为 Excel (.xlsx)：每行一条考勤记录，
// 列含日期、上/下班时间、状态、暂离合计与结余；
// 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入。
type ExportService interface {
	// ExportTimeRecords 导出某月考勤表；userID 为空时导出全员
	ExportTimeRecords(ctx context.Context, month string, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

var entryStatusLabels = map[string]string{
	model.EntryOnTime:       "准时",
	model.EntryWarning:      "偏差",
	model.EntryLate:         "迟到",
	model.EntryUnclassified: "未判定",
}

var exitStatusLabels = map[string]string{
	model.ExitOnTime:            "准时",
	model.ExitWarning:           "偏差",
	model.ExitEarlyDeparture:    "早退",
	model.ExitExcessiveOvertime: "超时加班",
	model.ExitUnclassified:      "未判定",
}

func (s *exportService) ExportTimeRecords(ctx context.Context, month string, userID string) (*bytes.Buffer, string, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, "", ErrExportInvalidMonth
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	filter := repository.TimeRecordFilter{
		UserID:   userID,
		DateFrom: &monthStart,
		DateTo:   &monthEnd,
	}
	// 单月数据量有限，一次取全
	records, total, err := s.repo.TimeRecord.List(ctx, filter, 0, 10000)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, "", err
	}
	if total == 0 {
		return nil, "", ErrExportNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考勤表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "D", 10)
	f.SetColWidth(sheetName, "E", "F", 10)
	f.SetColWidth(sheetName, "G", "H", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 考勤表", month))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"日期", "姓名", "上班", "下班", "入场状态", "离场状态", "暂离(分)", "结余(分)"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
		f.SetCellStyle(sheetName, cell(col, 2), cell(col, 2), headerStyle)
	}

	row := 3
	for i := range records {
		rec := &records[i]

		name := rec.UserID
		if rec.User != nil {
			name = rec.User.Name
		}

		exitText := "-"
		if rec.ExitAt != nil {
			exitText = rec.ExitAt.In(s.loc).Format("15:04")
		}
		balanceText := "-"
		if rec.BalanceMinutes != nil {
			balanceText = fmt.Sprintf("%d", *rec.BalanceMinutes)
		}

		f.SetCellValue(sheetName, cell("A", row), rec.ReferenceDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("B", row), name)
		f.SetCellValue(sheetName, cell("C", row), rec.EntryAt.In(s.loc).Format("15:04"))
		f.SetCellValue(sheetName, cell("D", row), exitText)
		f.SetCellValue(sheetName, cell("E", row), statusLabel(entryStatusLabels, rec.EntryStatus))
		f.SetCellValue(sheetName, cell("F", row), statusLabel(exitStatusLabels, rec.ExitStatus))
		f.SetCellValue(sheetName, cell("G", row), rec.CalcDetail.PauseMinutes)
		f.SetCellValue(sheetName, cell("H", row), balanceText)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("考勤表_%s.xlsx", month)
	return buf, filename, nil
}

// ── 辅助函数 ──

func statusLabel(labels map[string]string, status string) string {
	if label, ok := labels[status]; ok {
		return label
	}
	return status
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
