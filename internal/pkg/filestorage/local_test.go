package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeader builds a real multipart.FileHeader backed by in-memory
// content, the same shape handlers receive from gin's FormFile.
func makeFileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveGeneratedName(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/Uploads", false)
	require.NoError(t, err)

	fh := makeFileHeader(t, "portrait.png", "image/png", "png-bytes")
	publicPath, err := storage.Save(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(publicPath, "/Uploads/"))
	assert.True(t, strings.HasSuffix(publicPath, ".png"))
	// The original name must not survive into the stored name
	assert.NotContains(t, publicPath, "portrait")

	content, err := os.ReadFile(storage.FullPath(publicPath))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestSaveKeepName(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/awards", true)
	require.NoError(t, err)

	fh := makeFileHeader(t, "diploma 2024.pdf", "application/pdf", "pdf-bytes")
	publicPath, err := storage.Save(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(publicPath, "/awards/"))
	assert.True(t, strings.HasSuffix(publicPath, "-diploma 2024.pdf"))

	_, err = os.Stat(storage.FullPath(publicPath))
	assert.NoError(t, err)
}

func TestSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/awards", true)
	require.NoError(t, err)

	fh := makeFileHeader(t, `..\..\evil.pdf`, "application/pdf", "x")
	publicPath, err := storage.Save(fh)
	require.NoError(t, err)

	assert.NotContains(t, publicPath, "..")
	assert.True(t, strings.HasSuffix(publicPath, "evil.pdf"))

	// The file must land inside the storage directory
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "evil.pdf"))
}

func TestSaveNilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/Uploads", false)
	require.NoError(t, err)

	publicPath, err := storage.Save(nil)
	require.NoError(t, err)
	assert.Empty(t, publicPath)
}

func TestDeleteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/Uploads", false)
	require.NoError(t, err)

	fh := makeFileHeader(t, "a.png", "image/png", "x")
	publicPath, err := storage.Save(fh)
	require.NoError(t, err)

	fullPath := storage.FullPath(publicPath)
	require.NoError(t, storage.Delete(publicPath))
	_, statErr := os.Stat(fullPath)
	assert.True(t, os.IsNotExist(statErr))

	// Second delete of the same path is not an error
	assert.NoError(t, storage.Delete(publicPath))
	assert.NoError(t, storage.Delete(""))
}

func TestFullPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/Uploads", false)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "name.png"), storage.FullPath("/Uploads/name.png"))
	assert.Empty(t, storage.FullPath(""))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "photo.png", sanitizeName("photo.png"))
	assert.Equal(t, "photo.png", sanitizeName("/tmp/photo.png"))
	assert.Equal(t, "photo.png", sanitizeName(`C:\temp\photo.png`))
	assert.Equal(t, "file", sanitizeName(""))
	assert.Equal(t, "file", sanitizeName("..."))
}
