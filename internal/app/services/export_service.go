package services

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bucodel/registration-backend/internal/app/repositories"
	"github.com/bucodel/registration-backend/internal/pkg/export"
)

// ExportService streams the student roster as CSV or PDF documents.
type ExportService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{studentRepo: studentRepo, logger: logger}
}

// WriteCSV writes every student, newest first, as a CSV document.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	students, err := s.studentRepo.ListForExport(ctx, 0)
	if err != nil {
		return err
	}

	s.logger.Info().Int("count", len(students)).Msg("Exporting students as CSV")
	return export.WriteCSV(w, students)
}

// WritePDF writes a tabular report of the newest students as a PDF document.
// The report is capped; CSV is the full-fidelity export.
func (s *ExportService) WritePDF(ctx context.Context, w io.Writer) error {
	students, err := s.studentRepo.ListForExport(ctx, export.MaxPDFRows)
	if err != nil {
		return err
	}

	s.logger.Info().Int("count", len(students)).Msg("Exporting students as PDF")
	return export.WritePDF(w, students, time.Now())
}
