package filestorage

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func headerWithType(filename, contentType string, size int64) *multipart.FileHeader {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: filename,
		Header:   header,
		Size:     size,
	}
}

func TestValidateAvatar(t *testing.T) {
	assert.NoError(t, ValidateAvatar(nil))
	assert.NoError(t, ValidateAvatar(headerWithType("a.png", "image/png", 1024)))
	assert.NoError(t, ValidateAvatar(headerWithType("a.jpg", "image/jpeg", MaxAvatarSize)))
	assert.NoError(t, ValidateAvatar(headerWithType("a.gif", "image/gif", 1024)))

	assert.Error(t, ValidateAvatar(headerWithType("a.png", "image/png", MaxAvatarSize+1)))
	assert.Error(t, ValidateAvatar(headerWithType("a.pdf", "application/pdf", 1024)))
	assert.Error(t, ValidateAvatar(headerWithType("a.png", "", 1024)))
}

func TestValidateAwardFile(t *testing.T) {
	assert.NoError(t, ValidateAwardFile(nil))
	for _, name := range []string{"scan.pdf", "photo.JPG", "photo.jpeg", "cert.png"} {
		assert.NoError(t, ValidateAwardFile(headerWithType(name, "", 1)), name)
	}

	for _, name := range []string{"doc.docx", "archive.zip", "noext", "script.sh"} {
		assert.Error(t, ValidateAwardFile(headerWithType(name, "", 1)), name)
	}
}
