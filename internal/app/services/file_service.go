package services

import (
	"context"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bucodel/registration-backend/internal/app/models/dto"
	"github.com/bucodel/registration-backend/internal/app/repositories"
	"github.com/bucodel/registration-backend/internal/pkg/filestorage"
)

// FileService exposes storage maintenance: orphan cleanup and inventory.
type FileService struct {
	studentRepo repositories.IStudentRepository
	fileStore   filestorage.FileStore
	logger      zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(studentRepo repositories.IStudentRepository, fileStore filestorage.FileStore, logger zerolog.Logger) *FileService {
	return &FileService{
		studentRepo: studentRepo,
		fileStore:   fileStore,
		logger:      logger,
	}
}

// Cleanup deletes every stored file no registration references.
//
// The reference set is read before the sweep; a registration created while
// the sweep runs can lose its freshly stored file. Accepted for this
// operator-triggered maintenance call.
func (s *FileService) Cleanup(ctx context.Context) (*dto.CleanupResponse, error) {
	urls, err := s.studentRepo.ProfilePictureURLs(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		if name := filenameFromURL(url); name != "" {
			known[name] = struct{}{}
		}
	}

	removed, err := s.fileStore.SweepOrphans(known)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("removed", removed).Msg("Orphaned file cleanup finished")

	return &dto.CleanupResponse{
		Message:              "Cleanup completed",
		OrphanedFilesRemoved: removed,
	}, nil
}

// Info returns an inventory of the stored files.
func (s *FileService) Info() (*dto.FilesInfoResponse, error) {
	files, err := s.fileStore.ListFiles()
	if err != nil {
		return nil, err
	}

	var totalSize int64
	for _, f := range files {
		totalSize += f.Size
	}

	return &dto.FilesInfoResponse{
		TotalFiles: len(files),
		TotalSize:  totalSize,
		Files:      files,
	}, nil
}

// filenameFromURL reduces a stored public URL ("/uploads/<name>") to the bare
// filename the storage layer keys on.
func filenameFromURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	return path.Base(url)
}
