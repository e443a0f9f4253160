package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestSaveFileGeneratesUniqueNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	header := uploadHeader(t, "photo.jpg", "image-bytes")

	first, err := storage.SaveFile(header, "images", "property")
	require.NoError(t, err)
	second, err := storage.SaveFile(header, "images", "property")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "images/property-"))
	assert.Equal(t, ".jpg", filepath.Ext(first))
	assert.True(t, storage.Exists(first))
	assert.True(t, storage.Exists(second))
}

func TestSaveFilePreservesContent(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	saved, err := storage.SaveFile(uploadHeader(t, "doc.png", "pixels"), "uploads", "profile")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(saved)))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(content))
}

func TestDeleteFileIsIdempotent(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	saved, err := storage.SaveFile(uploadHeader(t, "photo.jpg", "x"), "images", "agent")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(saved))
	assert.False(t, storage.Exists(saved))

	// Deleting again is not an error
	assert.NoError(t, storage.DeleteFile(saved))
	assert.NoError(t, storage.DeleteFile(""))
}

func TestDeleteFileRejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(filepath.Join(dir, "store"))
	require.NoError(t, err)

	outside := filepath.Join(dir, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	require.NoError(t, storage.DeleteFile("../outside.txt"))

	_, err = os.Stat(outside)
	assert.NoError(t, err, "file outside the storage root must survive")
}
