package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bucodel/registration-backend/internal/app/models"
	"github.com/bucodel/registration-backend/internal/app/models/dto"
	"github.com/bucodel/registration-backend/internal/app/repositories"
	"github.com/bucodel/registration-backend/internal/pkg/apperrors"
	pkgAuth "github.com/bucodel/registration-backend/internal/pkg/auth"
	"github.com/bucodel/registration-backend/internal/pkg/filestorage"
)

// fakeStudentRepo is an in-memory IStudentRepository for exercising the
// service's write/rollback sequencing without a database.
type fakeStudentRepo struct {
	students  map[int64]*models.Student
	nextID    int64
	insertErr error
	updateErr error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentRepo) Insert(_ context.Context, student *models.Student) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	for _, s := range f.students {
		if s.Email == student.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	student.ID = f.nextID
	cp := *student
	f.students[f.nextID] = &cp
	return f.nextID, nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) List(_ context.Context, _ repositories.ListParams) ([]models.Student, int64, error) {
	out := make([]models.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentRepo) ListForExport(_ context.Context, _ int) ([]models.Student, error) {
	out := make([]models.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStudentRepo) Update(_ context.Context, id int64, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if v, ok := fields["first_name"].(string); ok {
		s.FirstName = v
	}
	if v, ok := fields["email"].(string); ok {
		s.Email = v
	}
	if v, ok := fields["profile_picture_url"].(string); ok {
		s.ProfilePictureURL = &v
	}
	return nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) ProfilePictureURLs(_ context.Context) ([]string, error) {
	var urls []string
	for _, s := range f.students {
		if s.ProfilePictureURL != nil {
			urls = append(urls, *s.ProfilePictureURL)
		}
	}
	return urls, nil
}

func newTestService(t *testing.T, repo repositories.IStudentRepository) (*StudentService, *filestorage.LocalStorage, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := filestorage.NewLocalStorage(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	jwt := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})

	svc := NewStudentService(repo, store, jwt, zerolog.Nop())
	return svc, store, dir
}

func uploadedFile(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="profilePicture"; filename="%s"`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["profilePicture"][0]
}

func storedFileCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	return len(entries)
}

func registerReq(email string) *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Phone:     "555-0100",
		Password:  "s3cret!",
		Age:       "28",
		Courses:   []string{`["Web Development","Data Science"]`},
	}
}

func TestRegisterWithFile(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, dir := newTestService(t, repo)

	resp, err := svc.Register(context.Background(), registerReq("ada@example.com"), uploadedFile(t, "me.png", "image/png", []byte("img")))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.StudentID != 1 {
		t.Errorf("StudentID = %d, want 1", resp.StudentID)
	}
	if resp.Data.ProfilePictureURL == nil || !strings.HasPrefix(*resp.Data.ProfilePictureURL, "/uploads/profile-me-") {
		t.Errorf("unexpected profile picture url: %v", resp.Data.ProfilePictureURL)
	}
	if got := storedFileCount(t, dir); got != 1 {
		t.Errorf("stored file count = %d, want 1", got)
	}

	stored := repo.students[1]
	if stored.Age == nil || *stored.Age != 28 {
		t.Errorf("age = %v, want 28", stored.Age)
	}
	if len(stored.Courses) != 2 || stored.Courses[0] != "Web Development" {
		t.Errorf("courses = %v", stored.Courses)
	}
	if stored.Password == "s3cret!" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterWithoutFile(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, dir := newTestService(t, repo)

	resp, err := svc.Register(context.Background(), registerReq("ada@example.com"), nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Data.ProfilePictureURL != nil {
		t.Errorf("ProfilePictureURL = %v, want nil", resp.Data.ProfilePictureURL)
	}
	if got := storedFileCount(t, dir); got != 0 {
		t.Errorf("stored file count = %d, want 0", got)
	}
}

func TestRegisterRejectedFileStoresNothing(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, dir := newTestService(t, repo)

	_, err := svc.Register(context.Background(), registerReq("ada@example.com"), uploadedFile(t, "doc.pdf", "application/pdf", []byte("%PDF")))
	if !errors.Is(err, apperrors.ErrInvalidFile) {
		t.Fatalf("Register error = %v, want ErrInvalidFile", err)
	}
	if got := storedFileCount(t, dir); got != 0 {
		t.Errorf("stored file count = %d, want 0", got)
	}
	if len(repo.students) != 0 {
		t.Errorf("row written despite rejected file")
	}
}

func TestRegisterRollsBackFileOnInsertFailure(t *testing.T) {
	repo := newFakeStudentRepo()
	repo.insertErr = errors.New("connection reset")
	svc, _, dir := newTestService(t, repo)

	_, err := svc.Register(context.Background(), registerReq("ada@example.com"), uploadedFile(t, "me.jpg", "image/jpeg", []byte("img")))
	if err == nil {
		t.Fatal("Register succeeded, want error")
	}
	if got := storedFileCount(t, dir); got != 0 {
		t.Errorf("stored file count after failed insert = %d, want 0", got)
	}
}

func TestRegisterDuplicateEmailCleansUpFile(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, dir := newTestService(t, repo)

	if _, err := svc.Register(context.Background(), registerReq("ada@example.com"), nil); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(context.Background(), registerReq("ada@example.com"), uploadedFile(t, "me.jpg", "image/jpeg", []byte("img")))
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("Register error = %v, want ErrEmailAlreadyExists", err)
	}
	if got := storedFileCount(t, dir); got != 0 {
		t.Errorf("stored file count after duplicate = %d, want 0", got)
	}
}

func TestRegisterTolerantAge(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, _ := newTestService(t, repo)

	req := registerReq("ada@example.com")
	req.Age = "abc"
	if _, err := svc.Register(context.Background(), req, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if repo.students[1].Age != nil {
		t.Errorf("age = %v, want nil for non-numeric input", repo.students[1].Age)
	}
}

func TestUpdateReplacesFile(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, dir := newTestService(t, repo)

	if _, err := svc.Register(context.Background(), registerReq("ada@example.com"), uploadedFile(t, "old.png", "image/png", []byte("old"))); err != nil {
		t.Fatalf("Register: %v", err)
	}
	oldURL := *repo.students[1].ProfilePictureURL

	resp, err := svc.Update(context.Background(), 1, &dto.UpdateStudentRequest{}, uploadedFile(t, "new.png", "image/png", []byte("new")))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.ProfilePictureURL == nil || *resp.ProfilePictureURL == oldURL {
		t.Errorf("update response url = %v, want a fresh url", resp.ProfilePictureURL)
	}
	if got := storedFileCount(t, dir); got != 1 {
		t.Errorf("stored file count after replace = %d, want 1", got)
	}
	if *repo.students[1].ProfilePictureURL == oldURL {
		t.Error("row still references the replaced file")
	}
}

func TestUpdateFailureKeepsOldFile(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, dir := newTestService(t, repo)

	if _, err := svc.Register(context.Background(), registerReq("ada@example.com"), uploadedFile(t, "old.png", "image/png", []byte("old"))); err != nil {
		t.Fatalf("Register: %v", err)
	}
	oldURL := *repo.students[1].ProfilePictureURL

	repo.updateErr = errors.New("deadlock detected")
	_, err := svc.Update(context.Background(), 1, &dto.UpdateStudentRequest{}, uploadedFile(t, "new.png", "image/png", []byte("new")))
	if err == nil {
		t.Fatal("Update succeeded, want error")
	}
	if got := storedFileCount(t, dir); got != 1 {
		t.Errorf("stored file count after failed update = %d, want 1", got)
	}
	if *repo.students[1].ProfilePictureURL != oldURL {
		t.Error("row no longer references the original file")
	}
}

func TestUpdateUnknownStudent(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, _ := newTestService(t, repo)

	_, err := svc.Update(context.Background(), 99, &dto.UpdateStudentRequest{}, nil)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("Update error = %v, want ErrStudentNotFound", err)
	}
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, dir := newTestService(t, repo)

	if _, err := svc.Register(context.Background(), registerReq("ada@example.com"), uploadedFile(t, "me.png", "image/png", []byte("img"))); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.students) != 0 {
		t.Error("row survived delete")
	}
	if got := storedFileCount(t, dir); got != 0 {
		t.Errorf("stored file count after delete = %d, want 0", got)
	}

	if err := svc.Delete(context.Background(), 1); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("second Delete error = %v, want ErrStudentNotFound", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, _, _ := newTestService(t, repo)

	if _, err := svc.Register(context.Background(), registerReq("ada@example.com"), nil); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Errorf("unexpected login response: %+v", resp)
	}

	// Wrong password and unknown account are indistinguishable.
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "s3cret!"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestFileServiceCleanup(t *testing.T) {
	repo := newFakeStudentRepo()
	svc, store, dir := newTestService(t, repo)

	if _, err := svc.Register(context.Background(), registerReq("ada@example.com"), uploadedFile(t, "keep.png", "image/png", []byte("k"))); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := store.Save(uploadedFile(t, "orphan.png", "image/png", []byte("o"))); err != nil {
		t.Fatalf("Save orphan: %v", err)
	}

	fs := NewFileService(repo, store, zerolog.Nop())
	resp, err := fs.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if resp.OrphanedFilesRemoved != 1 {
		t.Errorf("OrphanedFilesRemoved = %d, want 1", resp.OrphanedFilesRemoved)
	}
	if got := storedFileCount(t, dir); got != 1 {
		t.Errorf("stored file count after cleanup = %d, want 1", got)
	}

	info, err := fs.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", info.TotalFiles)
	}
}
