package filestorage

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dkuznetsov/awardhub/internal/pkg/logger"
)

// LocalStorage stores files in a single directory on the local filesystem.
// keepName controls the stored filename: award attachments keep the original
// name behind a timestamp prefix, avatars get a fully generated name.
type LocalStorage struct {
	basePath     string
	publicPrefix string
	keepName     bool
}

// NewLocalStorage creates a LocalStorage rooted at basePath, serving files
// under publicPrefix. The directory is created up front so handlers never
// have to touch the filesystem layout.
func NewLocalStorage(basePath, publicPrefix string, keepName bool) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath:     basePath,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		keepName:     keepName,
	}, nil
}

// Save writes an uploaded file to the storage directory and returns its
// public path. The stored name is always derived from the upload time; the
// original name, when kept, is reduced to its sanitized base name.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	storedName := ls.storedName(fileHeader.Filename)
	dstPath := filepath.Join(ls.basePath, storedName)

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

	publicPath := ls.publicPrefix + "/" + storedName
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedName).Msg("File saved")
	return publicPath, nil
}

func (ls *LocalStorage) storedName(originalName string) string {
	now := time.Now().UnixMilli()
	suffix := rand.Int63n(1_000_000_000)
	if ls.keepName {
		return fmt.Sprintf("%d-%d-%s", now, suffix, sanitizeName(originalName))
	}
	return fmt.Sprintf("%d-%d%s", now, suffix, filepath.Ext(originalName))
}

// sanitizeName strips any path components and separator characters from an
// uploaded filename before it is reused on disk.
func sanitizeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.ReplaceAll(base, "..", "")
	if base == "" || base == "." || base == "/" {
		return "file"
	}
	return base
}

// Delete removes a stored file given its public path. Missing files are not
// an error; deletion is idempotent.
func (ls *LocalStorage) Delete(publicPath string) error {
	if publicPath == "" {
		return nil
	}

	filename := filepath.Base(publicPath)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file path: %s", publicPath)
	}

	physicalPath := filepath.Join(ls.basePath, filename)
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

// FullPath returns the filesystem path for a stored public path.
func (ls *LocalStorage) FullPath(publicPath string) string {
	filename := filepath.Base(publicPath)
	if filename == "" || filename == "." || filename == "/" {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}
