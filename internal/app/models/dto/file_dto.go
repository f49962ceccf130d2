package dto

import "github.com/bucodel/registration-backend/internal/pkg/filestorage"

// CleanupResponse is the success shape of GET /api/files/cleanup.
type CleanupResponse struct {
	Message              string `json:"message"`
	OrphanedFilesRemoved int    `json:"orphanedFilesRemoved"`
}

// FilesInfoResponse is the success shape of GET /api/files/info.
type FilesInfoResponse struct {
	TotalFiles int                          `json:"totalFiles"`
	TotalSize  int64                        `json:"totalSize"`
	Files      []filestorage.StoredFileInfo `json:"files"`
}

// UploadTestFileInfo describes the file echoed by POST /api/upload-test.
type UploadTestFileInfo struct {
	OriginalName string `json:"originalName"`
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
	URL          string `json:"url"`
}

// UploadTestResponse is the success shape of POST /api/upload-test.
type UploadTestResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	File    UploadTestFileInfo `json:"file"`
}
