package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/estatecore/backend/internal/pkg/logger"
)

// LocalStorage stores uploads on the local filesystem under a single root
// directory (served statically by the HTTP layer).
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// SaveFile stores an uploaded file under subPath. Generated names are
// ksuid-based (creation-time ordered with a random suffix) so concurrent
// uploads cannot collide; the original extension is preserved.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath, prefix string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create upload subdirectory")
			return "", fmt.Errorf("failed to create upload subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	name := ksuid.New().String() + ext
	if prefix != "" {
		name = prefix + "-" + name
	}

	dstPath := filepath.Join(fullDirPath, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := name
	if subPath != "" {
		relPath = subPath + "/" + name
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", relPath).Msg("File saved")
	return relPath, nil
}

// DeleteFile removes a stored file by its relative path. Missing files and
// empty paths are treated as already deleted.
func (ls *LocalStorage) DeleteFile(relPath string) error {
	physicalPath, ok := ls.resolve(relPath)
	if !ok {
		return nil
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// Exists reports whether a stored file is present
func (ls *LocalStorage) Exists(relPath string) bool {
	physicalPath, ok := ls.resolve(relPath)
	if !ok {
		return false
	}
	_, err := os.Stat(physicalPath)
	return err == nil
}

// resolve maps a stored relative path to a physical path, rejecting
// anything that would escape the storage root.
func (ls *LocalStorage) resolve(relPath string) (string, bool) {
	relPath = strings.TrimPrefix(strings.TrimSpace(relPath), "/")
	if relPath == "" {
		return "", false
	}

	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", false
	}

	return filepath.Join(ls.basePath, cleaned), true
}
