package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/bucodel/registration-backend/internal/app/models"
)

func intPtr(i int) *int { return &i }

func sampleStudents() []models.Student {
	created := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
	return []models.Student{
		{
			ID:         1,
			FirstName:  "Ada",
			LastName:   "Lovelace",
			Email:      "ada@bucodel.edu",
			Phone:      "08012345678",
			Age:        intPtr(28),
			Education:  "BSc",
			Experience: "2 years",
			Courses:    []string{"Web Development", "Data Science"},
			Motivation: `I want to "level up" my skills`,
			CreatedAt:  created,
		},
		{
			ID:        2,
			FirstName: "Alan",
			LastName:  "Turing",
			Email:     "alan@bucodel.edu",
			Courses:   []string{},
			CreatedAt: created,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleStudents()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV has %d lines, want 3 (header + 2 rows)", len(lines))
	}

	// The output must parse back with standard CSV rules.
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	header := records[0]
	if header[0] != "ID" || header[8] != "Courses" || header[10] != "Registration Date" {
		t.Errorf("unexpected header: %v", header)
	}

	first := records[1]
	if first[8] != "Web Development, Data Science" {
		t.Errorf("courses column = %q, want joined with %q", first[8], ", ")
	}
	if first[9] != `I want to "level up" my skills` {
		t.Errorf("motivation column did not survive quote escaping: %q", first[9])
	}
	if first[10] != "3/7/2025" {
		t.Errorf("registration date = %q, want %q", first[10], "3/7/2025")
	}

	// Embedded quotes must be doubled in the raw output.
	if !strings.Contains(buf.String(), `""level up""`) {
		t.Errorf("raw CSV does not double embedded quotes:\n%s", buf.String())
	}

	second := records[2]
	if second[5] != "" {
		t.Errorf("nil age rendered as %q, want empty", second[5])
	}
	if second[8] != "" {
		t.Errorf("empty courses rendered as %q, want empty", second[8])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("CSV for empty set has %d lines, want header only", len(lines))
	}
}
