package services

import (
	"context"
	"mime/multipart"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bucodel/registration-backend/internal/app/models"
	"github.com/bucodel/registration-backend/internal/app/models/dto"
	"github.com/bucodel/registration-backend/internal/app/repositories"
	"github.com/bucodel/registration-backend/internal/pkg/apperrors"
	pkgAuth "github.com/bucodel/registration-backend/internal/pkg/auth"
	"github.com/bucodel/registration-backend/internal/pkg/courses"
	"github.com/bucodel/registration-backend/internal/pkg/filestorage"
	"github.com/bucodel/registration-backend/internal/pkg/helpers"
)

// StudentService coordinates the upload lifecycle around student records:
// validate the file, store it, persist the row, and roll the file back when
// persistence fails. It is the only component that links rows to stored
// files, and it keeps two invariants: a committed row never points at a
// deleted file, and a failed or deleted row never leaves a dangling file.
//
// No locking spans the fetch/store/write sequence; two racing updates to the
// same record can orphan a file. That is an accepted limitation of this
// low-contention tool; the sweep reclaims the leak.
type StudentService struct {
	studentRepo repositories.IStudentRepository
	fileStore   filestorage.FileStore
	jwtService  *pkgAuth.JWTService
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	fileStore filestorage.FileStore,
	jwtService *pkgAuth.JWTService,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		fileStore:   fileStore,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates a student record with an optional profile picture.
//
// Order matters: the file is validated and stored before the row is written,
// so a crash in between leaves at worst an orphan file (reclaimable by
// sweep), never a row pointing at a missing file. If the insert fails the
// just-stored file is deleted.
func (s *StudentService) Register(ctx context.Context, req *dto.RegisterStudentRequest, fileHeader *multipart.FileHeader) (*dto.RegisterStudentResponse, error) {
	var storedFilename string
	var pictureURL *string

	if fileHeader != nil {
		if err := s.fileStore.Validate(fileHeader); err != nil {
			// Nothing was stored yet, so there is nothing to roll back.
			return nil, apperrors.NewInvalidFileError(err.Error())
		}

		filename, err := s.fileStore.Save(fileHeader)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to store profile picture")
			return nil, apperrors.NewCustomError(apperrors.ErrFileStorage, "Failed to store profile picture")
		}
		storedFilename = filename
		url := s.fileStore.URLFor(filename)
		pictureURL = &url
	}

	hashed, err := pkgAuth.HashPassword(req.Password)
	if err != nil {
		s.cleanupStoredFile(storedFilename)
		return nil, err
	}

	student := &models.Student{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Password:          hashed,
		Age:               parseAge(req.Age),
		Education:         req.Education,
		Experience:        req.Experience,
		Courses:           courses.FromForm(req.Courses),
		Motivation:        req.Motivation,
		ProfilePictureURL: pictureURL,
	}

	id, err := s.studentRepo.Insert(ctx, student)
	if err != nil {
		// Compensate: the row never existed, so the file must not either.
		s.cleanupStoredFile(storedFilename)
		return nil, err
	}

	s.logger.Info().Int64("studentId", id).Str("email", student.Email).Msg("Registration successful")

	return &dto.RegisterStudentResponse{
		Message:   "Registration successful",
		StudentID: id,
		Data: dto.RegisteredStudentData{
			FirstName:         student.FirstName,
			LastName:          student.LastName,
			Email:             student.Email,
			Phone:             student.Phone,
			Courses:           student.Courses,
			ProfilePictureURL: student.ProfilePictureURL,
		},
	}, nil
}

// Login authenticates a student by email and password. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *StudentService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.StudentLoginResponse, error) {
	student, err := s.studentRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !pkgAuth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.IssueToken(&pkgAuth.Principal{
		ID:    student.ID,
		Email: student.Email,
		Kind:  pkgAuth.PrincipalStudent,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("studentId", student.ID).Msg("Failed to issue student token")
		return nil, err
	}

	return &dto.StudentLoginResponse{
		Success: true,
		Message: "Login successful",
		Student: student,
		Token:   token,
	}, nil
}

// GetByID retrieves a single student.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List retrieves a page of students with search and sorting applied.
func (s *StudentService) List(ctx context.Context, params repositories.ListParams) (*dto.StudentListResponse, error) {
	students, total, err := s.studentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	page := params.Page
	if page < 1 {
		page = helpers.DefaultPage
	}
	limit := params.Limit
	if limit <= 0 || limit > helpers.MaxPageSize {
		limit = helpers.DefaultPageSize
	}

	return &dto.StudentListResponse{
		Students:    students,
		Total:       total,
		TotalPages:  helpers.TotalPages(total, limit),
		CurrentPage: page,
		Limit:       limit,
	}, nil
}

// Update applies a partial update with an optional replacement picture.
//
// A new file is stored before the row is written and deleted again if the
// write fails, leaving the old file referenced by the still-current row. The
// old file is deleted only after the update commits, never before.
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest, fileHeader *multipart.FileHeader) (*dto.UpdateStudentResponse, error) {
	existing, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := buildUpdateFields(req)

	var newFilename string
	var newURL *string
	if fileHeader != nil {
		if err := s.fileStore.Validate(fileHeader); err != nil {
			return nil, apperrors.NewInvalidFileError(err.Error())
		}

		filename, err := s.fileStore.Save(fileHeader)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to store replacement profile picture")
			return nil, apperrors.NewCustomError(apperrors.ErrFileStorage, "Failed to store profile picture")
		}
		newFilename = filename
		url := s.fileStore.URLFor(filename)
		newURL = &url
		fields["profile_picture_url"] = url
	}

	if err := s.studentRepo.Update(ctx, id, fields); err != nil {
		// The row still references the old file; only the new one goes.
		s.cleanupStoredFile(newFilename)
		return nil, err
	}

	if newFilename != "" && existing.ProfilePictureURL != nil {
		if res := s.fileStore.Delete(*existing.ProfilePictureURL); res == filestorage.IOFailure {
			s.logger.Error().Str("url", *existing.ProfilePictureURL).Msg("Failed to delete replaced profile picture")
		}
	}

	s.logger.Info().Int64("studentId", id).Msg("Student updated")

	return &dto.UpdateStudentResponse{
		Message:           "Student updated successfully",
		ProfilePictureURL: newURL,
	}, nil
}

// Delete removes a student and cleans up the referenced file. Row deletion
// is authoritative: a failed file deletion is logged, never surfaced.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	existing, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.ProfilePictureURL != nil {
		if res := s.fileStore.Delete(*existing.ProfilePictureURL); res == filestorage.IOFailure {
			s.logger.Error().Int64("studentId", id).Str("url", *existing.ProfilePictureURL).Msg("Failed to delete profile picture during student removal")
		}
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("studentId", id).Msg("Student deleted")
	return nil
}

// cleanupStoredFile is the compensation step of a failed write: best-effort,
// logged, never escalated. An orphan here is recoverable by the sweep.
func (s *StudentService) cleanupStoredFile(filename string) {
	if filename == "" {
		return
	}
	if res := s.fileStore.Delete(filename); res == filestorage.IOFailure {
		s.logger.Error().Str("filename", filename).Msg("Failed to clean up stored file after aborted write")
	}
}

// buildUpdateFields translates the partial request into column assignments.
func buildUpdateFields(req *dto.UpdateStudentRequest) map[string]interface{} {
	fields := make(map[string]interface{})

	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Age != nil {
		fields["age"] = parseAge(*req.Age)
	}
	if req.Education != nil {
		fields["education"] = *req.Education
	}
	if req.Experience != nil {
		fields["experience"] = *req.Experience
	}
	if req.Motivation != nil {
		fields["motivation"] = *req.Motivation
	}
	if len(req.Courses) > 0 {
		fields["courses"] = repositories.EncodeCourses(courses.FromForm(req.Courses))
	}

	return fields
}

// parseAge mirrors the registration form's tolerance: anything that is not a
// positive integer becomes null rather than an error.
func parseAge(raw string) *int {
	age, err := strconv.Atoi(raw)
	if err != nil || age <= 0 {
		return nil
	}
	return &age
}
