package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bucodel/registration-backend/internal/app/models"
	"github.com/bucodel/registration-backend/internal/pkg/apperrors"
	"github.com/bucodel/registration-backend/internal/pkg/courses"
	"github.com/bucodel/registration-backend/internal/pkg/dberrors"
	"github.com/bucodel/registration-backend/internal/pkg/helpers"
	"github.com/bucodel/registration-backend/internal/pkg/logger"
)

// ListParams controls pagination, search and sorting for student listings.
type ListParams struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// IStudentRepository defines the student persistence operations the service
// layer depends on.
type IStudentRepository interface {
	Insert(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context, params ListParams) ([]models.Student, int64, error)
	ListForExport(ctx context.Context, limit int) ([]models.Student, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	ProfilePictureURLs(ctx context.Context) ([]string, error)
}

// sortableColumns is the allow-list for the sort query parameter. Anything
// outside it falls back to id so a sort parameter can never inject SQL.
var sortableColumns = map[string]string{
	"id":         "id",
	"firstName":  "first_name",
	"lastName":   "last_name",
	"email":      "email",
	"age":        "age",
	"createdAt":  "created_at",
	"created_at": "created_at",
}

// SortColumn resolves a client-supplied sort field against the allow-list.
func SortColumn(field string) string {
	if col, ok := sortableColumns[field]; ok {
		return col
	}
	return "id"
}

// SortDirection normalizes a client-supplied order; only DESC flips it.
func SortDirection(order string) string {
	if strings.EqualFold(order, "DESC") {
		return "DESC"
	}
	return "ASC"
}

const studentColumns = "id, first_name, last_name, email, phone, password, age, education, experience, courses, motivation, profile_picture_url, created_at, updated_at"

// StudentRepository handles student database operations against the
// registrations table.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert creates a new registration row and returns its id.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) (int64, error) {
	now := time.Now()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO registrations
			(first_name, last_name, email, phone, password, age, education, experience, courses, motivation, profile_picture_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		student.FirstName, student.LastName, student.Email, student.Phone, student.Password,
		student.Age, student.Education, student.Experience, encodeCourses(student.Courses),
		student.Motivation, student.ProfilePictureURL, now, now).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating registration: %w", err)
	}

	student.ID = id
	student.CreatedAt = now
	student.UpdatedAt = now
	return id, nil
}

// GetByID retrieves a student by id.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM registrations
		WHERE id = $1`, id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// GetByEmail retrieves a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM registrations
		WHERE email = $1`, email)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student by email: %w", err)
	}
	return student, nil
}

// List retrieves a page of students with case-insensitive substring search
// across name and email fields, plus the total matching count.
func (r *StudentRepository) List(ctx context.Context, params ListParams) ([]models.Student, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)

	baseSelect := r.sb.Select(
		"id", "first_name", "last_name", "email", "phone", "password", "age",
		"education", "experience", "courses", "motivation", "profile_picture_url",
		"created_at", "updated_at",
	).From("registrations")

	countSelect := r.sb.Select("COUNT(*)").From("registrations")

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
		}
		baseSelect = baseSelect.Where(cond)
		countSelect = countSelect.Where(cond)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	orderBy := fmt.Sprintf("%s %s", SortColumn(params.SortBy), SortDirection(params.SortOrder))
	pageSql, pageArgs, err := baseSelect.
		OrderBy(orderBy).
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, pageSql, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0, limit)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, total, nil
}

// ListForExport retrieves students newest-first for export. limit <= 0 means
// no limit.
func (r *StudentRepository) ListForExport(ctx context.Context, limit int) ([]models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM registrations
		ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying students for export: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Update applies a partial field update. The keys of fields must be column
// names; callers own the translation from API names.
func (r *StudentRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	update := r.sb.Update("registrations").Where(squirrel.Eq{"id": id})
	for column, value := range fields {
		update = update.Set(column, value)
	}
	update = update.Set("updated_at", time.Now())

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a registration row.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// ProfilePictureURLs returns every non-null profile picture reference,
// the known set for the orphan sweep.
func (r *StudentRepository) ProfilePictureURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT profile_picture_url
		FROM registrations
		WHERE profile_picture_url IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("error querying profile picture urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("error scanning profile picture url: %w", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile picture urls: %w", err)
	}

	return urls, nil
}

// EncodeCourses serializes a course list for the TEXT column. Exposed for
// callers that build partial updates.
func EncodeCourses(list []string) string {
	return encodeCourses(list)
}

func encodeCourses(list []string) string {
	if list == nil {
		list = []string{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		// A []string cannot fail to marshal; keep the row consistent anyway.
		logger.Error().Err(err).Msg("Failed to encode courses list")
		return "[]"
	}
	return string(encoded)
}

// scanStudent reads one student row, decoding the serialized courses column
// tolerantly so legacy rows with odd encodings still load.
func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var rawCourses string

	err := row.Scan(
		&student.ID, &student.FirstName, &student.LastName, &student.Email, &student.Phone,
		&student.Password, &student.Age, &student.Education, &student.Experience,
		&rawCourses, &student.Motivation, &student.ProfilePictureURL,
		&student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	student.Courses = courses.Normalize(rawCourses)
	return &student, nil
}
