package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

// fileAttachmentStorage keeps attachments as flat files in a single upload
// directory. The key is the file name: a fresh UUID followed by the
// extension of the uploaded file.
type fileAttachmentStorage struct {
	dir    string
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewFileAttachmentStorage creates dir if needed and returns an
// [AttachmentStorage] writing into it.
func NewFileAttachmentStorage(dir string, logger *logger.Logger) (AttachmentStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating upload dir: %w", ErrStoringAttachment, err)
	}

	logger.Debug().Str("dir", dir).Msg("creating file attachment storage")
	return &fileAttachmentStorage{
		dir:    dir,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}, nil
}

func (f *fileAttachmentStorage) Save(ctx context.Context, attachment models.Attachment) (string, error) {
	log := logger.FromContext(ctx)

	key := attachmentKey(f.ids.Generate(), attachment.FileName)

	file, err := os.OpenFile(filepath.Join(f.dir, key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		log.Err(err).Str("func", "*fileAttachmentStorage.Save").Msg("failed to create attachment file")
		return "", fmt.Errorf("%w: %w", ErrStoringAttachment, err)
	}

	if _, err = io.Copy(file, attachment.Content); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		log.Err(err).Str("func", "*fileAttachmentStorage.Save").Msg("failed to write attachment file")
		return "", fmt.Errorf("%w: %w", ErrStoringAttachment, err)
	}

	if err = file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("%w: %w", ErrStoringAttachment, err)
	}

	return key, nil
}

func (f *fileAttachmentStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, ErrAttachmentNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*fileAttachmentStorage.Open").Msg("failed to open attachment file")
		return nil, fmt.Errorf("%w: %w", ErrStoringAttachment, err)
	}

	return file, nil
}

func (f *fileAttachmentStorage) Delete(ctx context.Context, key string) error {
	path, err := f.path(key)
	if errors.Is(err, ErrAttachmentNotFound) {
		return nil
	}

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*fileAttachmentStorage.Delete").Msg("failed to remove attachment file")
		return fmt.Errorf("%w: %w", ErrStoringAttachment, err)
	}

	return nil
}

// path maps key to a file inside the upload directory. Keys with a directory
// component never resolve.
func (f *fileAttachmentStorage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", ErrAttachmentNotFound
	}
	return filepath.Join(f.dir, key), nil
}

// attachmentKey builds the storage key of a new upload.
func attachmentKey(id, fileName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	if len(ext) > 16 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return id + ext
}
