package filestorage

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bucodel/registration-backend/internal/pkg/logger"
)

const (
	// MaxFileSize is the upload size limit (5 MiB).
	MaxFileSize = 5 * 1024 * 1024

	// placeholderFile keeps the uploads directory present in version control
	// and is never treated as an orphan.
	placeholderFile = ".gitkeep"
)

// allowedMimeTypes lists the accepted profile picture content types.
var allowedMimeTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// LocalStorage stores uploaded profile pictures on the local filesystem.
type LocalStorage struct {
	basePath string // root directory for stored files
	baseURL  string // public path prefix, e.g. "/uploads"
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed. baseURL is the public path under which the files are
// served.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Validate rejects uploads over the size limit or outside the MIME allow-list.
func (ls *LocalStorage) Validate(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return fmt.Errorf("no file provided")
	}

	if fileHeader.Size > MaxFileSize {
		return fmt.Errorf("file size exceeds 5MB limit")
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	for _, allowed := range allowedMimeTypes {
		if strings.EqualFold(mimeType, allowed) {
			return nil
		}
	}
	return fmt.Errorf("invalid file type. Only %s are allowed", strings.Join(allowedMimeTypes, ", "))
}

// GenerateFilename builds the stored name for an uploaded file: the sanitized
// original stem plus a timestamp and random suffix, keeping the original
// extension lower-cased. Uniqueness is probabilistic, not absolute.
func GenerateFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	stem := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	safeStem := unsafeNameChars.ReplaceAllString(stem, "-")
	uniqueSuffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Int63n(1_000_000_000))
	return fmt.Sprintf("profile-%s-%s%s", safeStem, uniqueSuffix, ext)
}

// Save persists the uploaded bytes under a generated name and returns it.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	filename := GenerateFilename(fileHeader.Filename)
	dstPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Remove the partially written file.
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", filename).Msg("File saved")
	return filename, nil
}

// URLFor maps a stored filename to its public path; empty in, empty out.
func (ls *LocalStorage) URLFor(filename string) string {
	if filename == "" {
		return ""
	}
	return ls.baseURL + "/" + filename
}

// Delete removes a file by stored name or public URL. Missing files count as
// success; I/O failures are logged and reported but never raised, so cleanup
// can never fail the surrounding record operation.
func (ls *LocalStorage) Delete(refOrURL string) DeleteResult {
	if refOrURL == "" {
		return NotFound
	}

	filename := filepath.Base(strings.TrimPrefix(refOrURL, ls.baseURL+"/"))
	if filename == "" || filename == "." || filename == "/" {
		logger.Warn().Str("ref", refOrURL).Msg("Refusing to delete invalid file reference")
		return NotFound
	}

	physicalPath := filepath.Join(ls.basePath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return NotFound
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return IOFailure
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return Deleted
}

// SweepOrphans deletes every stored file not present in the known reference
// set and returns the number removed. The placeholder entry is always kept.
func (ls *LocalStorage) SweepOrphans(known map[string]struct{}) (int, error) {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		return 0, fmt.Errorf("failed to list storage directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == placeholderFile {
			continue
		}
		if _, ok := known[entry.Name()]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(ls.basePath, entry.Name())); err != nil {
			logger.Error().Err(err).Str("filename", entry.Name()).Msg("Failed to remove orphaned file")
			continue
		}
		logger.Info().Str("filename", entry.Name()).Msg("Cleaned up orphaned file")
		removed++
	}

	return removed, nil
}

// ListFiles returns metadata for every stored file.
func (ls *LocalStorage) ListFiles() ([]StoredFileInfo, error) {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	files := make([]StoredFileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == placeholderFile {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, StoredFileInfo{
			Filename: entry.Name(),
			Size:     info.Size(),
			Created:  info.ModTime(),
			URL:      ls.URLFor(entry.Name()),
		})
	}

	return files, nil
}
