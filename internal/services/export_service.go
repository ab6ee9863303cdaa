package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/utils"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const attendanceSheet = "Attendance"

// ExportService renders coach reports as spreadsheets
type ExportService struct {
	attendance *AttendanceService
	log        *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(attendance *AttendanceService, log *zap.Logger) *ExportService {
	return &ExportService{
		attendance: attendance,
		log:        log,
	}
}

// ExportAttendance builds an .xlsx of the attendance list, optionally for a
// single day, and returns it with a suggested file name.
func (s *ExportService) ExportAttendance(ctx context.Context, day *time.Time) (*bytes.Buffer, string, error) {
	records, err := s.attendance.List(ctx, day)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	idx, err := f.NewSheet(attendanceSheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("failed to prepare workbook: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
	})

	headers := []string{"Date", "Athlete", "Event Group", "Status", "Note"}
	for i, h := range headers {
		f.SetCellValue(attendanceSheet, cell(i, 1), h)
	}
	f.SetCellStyle(attendanceSheet, cell(0, 1), cell(len(headers)-1, 1), headerStyle)

	for i, rec := range records {
		row := i + 2
		eventGroup := ""
		if rec.Athlete != nil && rec.Athlete.EventGroup != nil {
			eventGroup = *rec.Athlete.EventGroup
		}
		note := ""
		if rec.Note != nil {
			note = *rec.Note
		}

		f.SetCellValue(attendanceSheet, cell(0, row), utils.FormatDate(rec.Date))
		f.SetCellValue(attendanceSheet, cell(1, row), models.AthleteName(rec.Athlete, rec.AthleteID))
		f.SetCellValue(attendanceSheet, cell(2, row), eventGroup)
		f.SetCellValue(attendanceSheet, cell(3, row), string(rec.Status))
		f.SetCellValue(attendanceSheet, cell(4, row), note)
	}
	f.SetColWidth(attendanceSheet, "A", "A", 12)
	f.SetColWidth(attendanceSheet, "B", "C", 24)
	f.SetColWidth(attendanceSheet, "E", "E", 40)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := "attendance.xlsx"
	if day != nil {
		filename = fmt.Sprintf("attendance-%s.xlsx", utils.FormatDate(*day))
	}
	return buf, filename, nil
}

// cell converts zero-based column and one-based row into an A1 reference.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
