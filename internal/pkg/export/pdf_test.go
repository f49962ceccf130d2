package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/bucodel/registration-backend/internal/app/models"
)

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleStudents(), time.Now()); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with PDF magic, got %q", buf.Bytes()[:8])
	}
	if buf.Len() < 500 {
		t.Errorf("PDF output suspiciously small: %d bytes", buf.Len())
	}
}

func TestWritePDF_ManyRowsPaginates(t *testing.T) {
	// Enough rows to cross the page-break threshold several times.
	students := make([]models.Student, 150)
	for i := range students {
		students[i] = models.Student{
			ID:        int64(i + 1),
			FirstName: "Student",
			LastName:  fmt.Sprintf("Number%d", i+1),
			Email:     fmt.Sprintf("student%d@bucodel.edu", i+1),
			Courses:   []string{"A", "B", "C"},
			CreatedAt: time.Now(),
		}
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, students, time.Now()); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with PDF magic")
	}
}

func TestPDFRow(t *testing.T) {
	tests := []struct {
		name    string
		student models.Student
		want    [5]string
	}{
		{
			name: "truncation and first two courses",
			student: models.Student{
				ID:        7,
				FirstName: "Bartholomew",
				LastName:  "Featherstonehaugh",
				Email:     "bartholomew.featherstonehaugh@bucodel.edu",
				Phone:     "08012345678",
				Courses:   []string{"Web Development", "Data Science", "Cloud Computing"},
			},
			want: [5]string{
				"7",
				"Bartholomew Fea",
				"bartholomew.feathers",
				"08012345678",
				"Web Development, Data Sci",
			},
		},
		{
			name:    "missing phone and courses",
			student: models.Student{ID: 8, FirstName: "Ada", LastName: "L", Email: "a@b.c"},
			want:    [5]string{"8", "Ada L", "a@b.c", "N/A", "No courses"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pdfRow(&tt.student); got != tt.want {
				t.Errorf("pdfRow() = %v, want %v", got, tt.want)
			}
		})
	}
}
