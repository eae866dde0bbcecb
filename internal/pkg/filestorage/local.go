package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// LocalStorage handles saving resumes and other files to the local filesystem
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new LocalStorage instance. basePath is the root
// directory on the server; baseURL, if set, is prepended to returned paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFileWithPath saves an uploaded file into a subdirectory under the base
// path. Stored filenames are random to prevent collisions and path games.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
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
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

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

	var accessiblePath string
	if ls.baseURL != "" {
		if subPath != "" {
			accessiblePath = strings.TrimRight(ls.baseURL, "/") + "/" + subPath + "/" + uniqueFilename
		} else {
			accessiblePath = strings.TrimRight(ls.baseURL, "/") + "/" + uniqueFilename
		}
	} else {
		if subPath != "" {
			accessiblePath = filepath.Join("uploads", subPath, uniqueFilename)
		} else {
			accessiblePath = filepath.Join("uploads", uniqueFilename)
		}
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Msg("File saved")
	return accessiblePath, nil
}

// SaveFile saves an uploaded file using the default path
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return ls.SaveFileWithPath(fileHeader, "")
}

// DeleteFile removes a file from storage. Deleting a missing file is not an
// error; the operation is idempotent.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	filename := filepath.Base(filePath)
	if filename == "" || filename == "." || filename == "/" || filename == "uploads" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	// Preserve the subdirectory when the stored path contains one
	physicalPath := filepath.Join(ls.basePath, filename)
	if dir := filepath.Base(filepath.Dir(filePath)); dir != "uploads" && dir != "." {
		physicalPath = filepath.Join(ls.basePath, dir, filename)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetFullPath returns the full filesystem path for a given file URL
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	filename := filepath.Base(fileURL)
	if filename == "" || filename == "." || filename == "/" {
		return ""
	}

	return filepath.Join(ls.basePath, filename)
}
