package attendance

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"日期", "上班時間", "上班狀態", "上班代碼", "下班時間", "下班狀態", "下班代碼"}

// WriteWorkbook renders a month of attendance records as an XLSX workbook.
func WriteWorkbook(w io.Writer, emp employee.Employee, monthly attendance.MonthlyRecordsResponse) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := monthly.Month
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("%s %s", emp.EmployeeNo, emp.FullName)); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "C1", monthly.Month); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A2", "G2", headerStyle); err != nil {
		return err
	}

	for i, r := range monthly.Records {
		values := []string{r.Date, r.ClockInTime, r.ClockInStatus, r.ClockInCode, r.ClockOutTime, r.ClockOutStatus, r.ClockOutCode}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+3)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "G", 20); err != nil {
		return err
	}

	return f.Write(w)
}
