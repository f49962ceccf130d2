package filestorage

import (
	"mime/multipart"
	"time"
)

// DeleteResult reports the outcome of a best-effort file deletion.
type DeleteResult int

const (
	// Deleted means the file existed and was removed.
	Deleted DeleteResult = iota
	// NotFound means there was nothing to remove; treated as success.
	NotFound
	// IOFailure means the file could not be removed. Callers decide whether
	// this aborts their operation or is merely logged.
	IOFailure
)

// String returns a human-readable result name
func (r DeleteResult) String() string {
	switch r {
	case Deleted:
		return "deleted"
	case NotFound:
		return "not_found"
	case IOFailure:
		return "io_failure"
	}
	return "unknown"
}

// StoredFileInfo describes one file currently present in storage.
type StoredFileInfo struct {
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
	URL      string    `json:"url"`
}

// FileStore defines the storage operations the upload pipeline depends on.
type FileStore interface {
	// Validate rejects files that exceed the size limit or carry a MIME type
	// outside the image allow-list. The returned error holds the reason.
	Validate(fileHeader *multipart.FileHeader) error

	// Save persists the uploaded bytes under a collision-resistant generated
	// name and returns that name.
	Save(fileHeader *multipart.FileHeader) (string, error)

	// URLFor maps a stored filename to its public-facing path. Empty input
	// yields an empty string.
	URLFor(filename string) string

	// Delete removes a file by stored filename or public URL. It is
	// idempotent and never returns an error; I/O failures are reported in
	// the result and logged.
	Delete(refOrURL string) DeleteResult

	// SweepOrphans deletes every stored file whose name is absent from the
	// known set and returns the number removed.
	SweepOrphans(known map[string]struct{}) (int, error)

	// ListFiles returns metadata for every stored file.
	ListFiles() ([]StoredFileInfo, error)
}
