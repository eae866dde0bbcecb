package filestorage

import "mime/multipart"

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file and returns the path where it was stored
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
