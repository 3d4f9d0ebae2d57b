package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
)

// Storages bundles every persistence dependency of the service layer.
type Storages struct {
	DB                *DB
	UserRepository    UserRepository
	TaskRepository    TaskRepository
	ProjectRepository ProjectRepository
	AttachmentStorage AttachmentStorage
}

// NewStorages connects to PostgreSQL and picks the attachment backend: S3
// when a bucket is configured, the local upload directory otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	attachments, err := newAttachmentStorage(ctx, cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewStoragesFromDB(db, attachments, log), nil
}

// NewStoragesFromDB wires the repositories onto an existing connection.
func NewStoragesFromDB(db *DB, attachments AttachmentStorage, log *logger.Logger) *Storages {
	return &Storages{
		DB:                db,
		UserRepository:    NewUserRepository(db, log),
		TaskRepository:    NewTaskRepository(db, log),
		ProjectRepository: NewProjectRepository(db, log),
		AttachmentStorage: attachments,
	}
}

func newAttachmentStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (AttachmentStorage, error) {
	if cfg.S3.Bucket != "" {
		storage, err := NewS3AttachmentStorage(ctx, cfg.S3, log)
		if err != nil {
			return nil, fmt.Errorf("error creating s3 attachment storage: %w", err)
		}
		return storage, nil
	}

	storage, err := NewFileAttachmentStorage(cfg.Files.UploadDir, log)
	if err != nil {
		return nil, fmt.Errorf("error creating file attachment storage: %w", err)
	}
	return storage, nil
}

// Close releases the database pool.
func (s *Storages) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
