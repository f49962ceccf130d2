package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/bucodel/registration-backend/internal/app/models"
)

// MaxPDFRows caps how many rows the PDF export renders. The export is
// informational, not archival.
const MaxPDFRows = 100

// PDF layout, in points on a Letter page.
const (
	tableLeft    = 50.0
	tableRight   = 550.0
	columnStride = 100.0
	columnWidth  = 90.0
	rowHeight    = 20.0
	pageBreakY   = 700.0
	pageTopY     = 50.0
)

var pdfHeader = [5]string{"ID", "Name", "Email", "Phone", "Courses"}

// WritePDF renders up to MaxPDFRows students as a fixed-width columnar PDF
// report with a title banner and automatic page breaks.
func WritePDF(w io.Writer, students []models.Student, generatedAt time.Time) error {
	if len(students) > MaxPDFRows {
		students = students[:MaxPDFRows]
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 28, "BUCODel Students Report", "", 1, "C", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 16, fmt.Sprintf("Generated on: %s", generatedAt.Format("1/2/2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 16, fmt.Sprintf("Total Students: %d", len(students)), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	y := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 12)
	for i, header := range pdfHeader {
		pdf.Text(tableLeft+float64(i)*columnStride, y, header)
	}
	pdf.Line(tableLeft, y+8, tableRight, y+8)
	y += rowHeight + 5

	pdf.SetFont("Helvetica", "", 11)
	for i := range students {
		if y > pageBreakY {
			pdf.AddPage()
			y = pageTopY
		}
		for col, cell := range pdfRow(&students[i]) {
			pdf.Text(tableLeft+float64(col)*columnStride, y, cell)
		}
		y += rowHeight
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// pdfRow formats one student as the five report columns, applying the
// per-column truncation limits.
func pdfRow(s *models.Student) [5]string {
	phone := s.Phone
	if phone == "" {
		phone = "N/A"
	}

	courseList := "No courses"
	if len(s.Courses) > 0 {
		head := s.Courses
		if len(head) > 2 {
			head = head[:2]
		}
		courseList = strings.Join(head, ", ")
	}

	return [5]string{
		strconv.FormatInt(s.ID, 10),
		truncate(s.FullName(), 15),
		truncate(s.Email, 20),
		phone,
		truncate(courseList, 25),
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
