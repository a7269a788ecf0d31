package filestorage

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
)

// MaxAvatarSize is the upper bound for profile image uploads.
const MaxAvatarSize = 5 * 1024 * 1024

var avatarMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var awardFileExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
}

// ValidateAvatar checks a profile image upload against the allowed content
// types and the size limit.
func ValidateAvatar(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return nil
	}
	if fileHeader.Size > MaxAvatarSize {
		return apperrors.NewBadRequestError("image exceeds the 5MB size limit")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !avatarMimeTypes[contentType] {
		return apperrors.NewBadRequestError("only JPEG, PNG and GIF images are allowed")
	}
	return nil
}

// ValidateAwardFile checks an award attachment against the allowed
// extensions.
func ValidateAwardFile(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !awardFileExtensions[ext] {
		return apperrors.NewBadRequestError("only JPEG, JPG, PNG and PDF files are allowed")
	}
	return nil
}
