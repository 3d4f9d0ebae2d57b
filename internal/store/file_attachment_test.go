package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

func newTestFileStorage(t *testing.T) (AttachmentStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	storage, err := NewFileAttachmentStorage(dir, logger.Nop())
	require.NoError(t, err)
	return storage, dir
}

func TestFileAttachmentStorage_SaveOpenDelete(t *testing.T) {
	storage, dir := newTestFileStorage(t)
	ctx := context.Background()

	key, err := storage.Save(ctx, models.Attachment{
		FileName: "Report.PDF",
		Content:  strings.NewReader("%PDF-1.7"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.FileExists(t, filepath.Join(dir, key))

	rc, err := storage.Open(ctx, key)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.7", string(content))

	require.NoError(t, storage.Delete(ctx, key))
	assert.NoFileExists(t, filepath.Join(dir, key))

	_, err = storage.Open(ctx, key)
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestFileAttachmentStorage_KeysAreUnique(t *testing.T) {
	storage, _ := newTestFileStorage(t)

	first, err := storage.Save(context.Background(), models.Attachment{FileName: "a.txt", Content: strings.NewReader("1")})
	require.NoError(t, err)
	second, err := storage.Save(context.Background(), models.Attachment{FileName: "a.txt", Content: strings.NewReader("2")})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFileAttachmentStorage_DeleteMissingIsNoop(t *testing.T) {
	storage, _ := newTestFileStorage(t)

	assert.NoError(t, storage.Delete(context.Background(), "does-not-exist.png"))
	assert.NoError(t, storage.Delete(context.Background(), ""))
}

func TestFileAttachmentStorage_RejectsPathsOutsideDir(t *testing.T) {
	storage, dir := newTestFileStorage(t)

	outside := filepath.Join(filepath.Dir(dir), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))

	_, err := storage.Open(context.Background(), "../secret.txt")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)

	require.NoError(t, storage.Delete(context.Background(), "../secret.txt"))
	assert.FileExists(t, outside)
}

func TestAttachmentKey(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "keeps extension", fileName: "photo.JPG", want: "id.jpg"},
		{name: "no extension", fileName: "README", want: "id"},
		{name: "strips directories", fileName: "../../etc/passwd.txt", want: "id.txt"},
		{name: "overlong extension", fileName: "a.thisextensionistoolong", want: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attachmentKey("id", tt.fileName))
		})
	}
}
