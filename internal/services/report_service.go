package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"simak/internal/apperrors"
	"simak/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// Report formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var reportHeaders = []string{"Name", "ID", "Major", "Hobby", "Aspiration", "Created At"}

// Report is one rendered export of the full record list.
type Report struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ReportService renders the store snapshot into downloadable documents.
// It never touches the store itself; callers hand it a snapshot.
type ReportService struct{}

// NewReportService creates a new ReportService.
func NewReportService() *ReportService {
	return &ReportService{}
}

// Render produces the snapshot in the requested format. Unknown formats are
// a validation error.
func (s *ReportService) Render(students []models.Student, format string) (*Report, error) {
	filename := fmt.Sprintf("Student_Data_%s", time.Now().Format("20060102"))

	switch format {
	case FormatCSV:
		data, err := renderCSV(students)
		if err != nil {
			return nil, err
		}
		return &Report{Data: data, Filename: filename + ".csv", ContentType: "text/csv"}, nil
	case FormatXLSX:
		data, err := renderXLSX(students)
		if err != nil {
			return nil, err
		}
		return &Report{
			Data:        data,
			Filename:    filename + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil
	case FormatPDF:
		data, err := renderPDF(students)
		if err != nil {
			return nil, err
		}
		return &Report{Data: data, Filename: filename + ".pdf", ContentType: "application/pdf"}, nil
	default:
		return nil, apperrors.Validationf("unknown report format: %s", format)
	}
}

func studentRow(s models.Student) []string {
	return []string{s.Name, s.ID, s.Major, s.Hobby, s.Aspiration, s.CreatedAt}
}

func renderCSV(students []models.Student) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, s := range students {
		if err := w.Write(studentRow(s)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(students []models.Student) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(reportHeaders))
	for i, h := range reportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write sheet header: %w", err)
	}
	for i, s := range students {
		row := studentRow(s)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write sheet row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialise workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPDF(students []models.Student) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Student Data Report", "", 1, "C", false, 0, "")
	})
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)

	widths := []float64{40, 30, 35, 30, 35, 30}
	for i, h := range reportHeaders {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	for _, s := range students {
		created := s.CreatedAt
		if idx := strings.IndexByte(created, ' '); idx > 0 {
			created = created[:idx] // date only, the time does not fit
		}
		cells := []string{
			truncate(s.Name, 30),
			s.ID,
			truncate(s.Major, 20),
			truncate(s.Hobby, 15),
			truncate(s.Aspiration, 20),
			created,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
