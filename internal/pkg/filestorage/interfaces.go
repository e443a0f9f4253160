package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for stored upload operations. Paths are
// relative to the storage root and are what records persist.
type FileStorage interface {
	// SaveFile stores an uploaded file under subPath with a generated
	// collision-resistant name carrying the given prefix, and returns the
	// relative path to persist.
	SaveFile(fileHeader *multipart.FileHeader, subPath, prefix string) (string, error)

	// DeleteFile removes a previously stored file. Deleting a missing file
	// is not an error.
	DeleteFile(relPath string) error

	// Exists reports whether a stored file is present.
	Exists(relPath string) bool
}
