// Package export renders student record sets as CSV text or a paginated PDF
// report. Both formats are informational exports for administrators; the PDF
// additionally caps how many rows it renders.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bucodel/registration-backend/internal/app/models"
)

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{
	"ID", "First Name", "Last Name", "Email", "Phone", "Age",
	"Education", "Experience", "Courses", "Motivation", "Registration Date",
}

// WriteCSV renders the full record set as CSV with a header row. Quoting and
// quote-doubling follow standard CSV escaping.
func WriteCSV(w io.Writer, students []models.Student) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range students {
		if err := cw.Write(csvRow(&students[i])); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRow(s *models.Student) []string {
	age := ""
	if s.Age != nil {
		age = strconv.Itoa(*s.Age)
	}

	return []string{
		strconv.FormatInt(s.ID, 10),
		s.FirstName,
		s.LastName,
		s.Email,
		s.Phone,
		age,
		s.Education,
		s.Experience,
		strings.Join(s.Courses, ", "),
		s.Motivation,
		s.CreatedAt.Format("1/2/2006"),
	}
}
