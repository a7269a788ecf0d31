package filestorage

import "mime/multipart"

// FileStorage defines the interface for storing uploaded files on disk.
// Save returns the public path under which the file is served; Delete takes
// that same public path and is idempotent.
type FileStorage interface {
	Save(fileHeader *multipart.FileHeader) (string, error)
	Delete(publicPath string) error
	FullPath(publicPath string) string
}
