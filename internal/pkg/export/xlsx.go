package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	SheetWeeks = "Weeks"
	SheetDays  = "Days"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	weekHeader = []interface{}{"Week", "From", "To", "Planned hours", "Contract hours", "Difference", "Work days", "Leave days"}
	dayHeader  = []interface{}{"Date", "Day", "Display", "Start", "End", "Hours", "Break", "Status"}
)

// MonthlyReportWorkbook renders a monthly report as an xlsx workbook with a
// weekly sheet and a day-by-day sheet.
func MonthlyReportWorkbook(r report.MonthlyReport) (report.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWeeks); err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetDays); err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E7FF"}},
	})
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeWeeks(f, r, headerStyle); err != nil {
		return report.ExportFile{}, err
	}
	if err := writeDays(f, r, headerStyle); err != nil {
		return report.ExportFile{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	return report.ExportFile{
		FileName:    FileName(r),
		ContentType: ContentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}

// FileName is the download name, e.g. schedule_anna-berg_2024-07.xlsx.
func FileName(r report.MonthlyReport) string {
	who := r.Context.EmployeeName
	if who == "" {
		who = r.EmployeeID
	}
	who = strings.ToLower(strings.Join(strings.Fields(who), "-"))
	return fmt.Sprintf("schedule_%s_%04d-%02d.xlsx", who, r.Year, r.Month)
}

func writeWeeks(f *excelize.File, r report.MonthlyReport, headerStyle int) error {
	title := fmt.Sprintf("%s %s %d", r.Context.EmployeeName, r.MonthName, r.Year)
	if err := f.SetCellValue(SheetWeeks, "A1", strings.TrimSpace(title)); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetWeeks, "A3", &weekHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetWeeks, "A3", "H3", headerStyle); err != nil {
		return err
	}

	row := 4
	for _, w := range r.WeeklySchedule {
		values := []interface{}{
			w.WeekNumber,
			w.WeekStartDate.Short(),
			w.WeekEndDate.Short(),
			w.PlannedHours,
			w.ContractHours,
			roundHours(w.PlannedHours - w.ContractHours),
			w.WorkDays,
			w.LeaveDays,
		}
		if err := f.SetSheetRow(SheetWeeks, cell("A", row), &values); err != nil {
			return err
		}
		row++
	}

	row++
	totals := [][]interface{}{
		{"Total planned hours", r.TotalPlannedHours},
		{"Contract hours", r.ContractBaseline.TotalContractHours},
		{"Difference", r.HoursDifference},
		{"Average per week", r.AverageHoursPerWeek},
	}
	for i := range totals {
		if err := f.SetSheetRow(SheetWeeks, cell("A", row), &totals[i]); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(SheetWeeks, "A", "H", 16)
}

func writeDays(f *excelize.File, r report.MonthlyReport, headerStyle int) error {
	if err := f.SetSheetRow(SheetDays, "A1", &dayHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetDays, "A1", "H1", headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(SheetDays, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	for i, d := range r.DailyRecords {
		values := []interface{}{
			d.Date.Short(),
			d.DayOfWeek,
			d.Display,
			deref(d.StartTime),
			deref(d.EndTime),
			d.Hours,
			d.BreakHours,
			string(d.Status),
		}
		if err := f.SetSheetRow(SheetDays, cell("A", i+2), &values); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetDays, "A", "H", 14)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
