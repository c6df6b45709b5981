package adapters

import (
	"context"
	"io"

	"gascert_backend/internal/adapters/storage"
	certsvc "gascert_backend/internal/certificates/service"
	jobsvc "gascert_backend/internal/jobs/service"
)

// JobFileStore adapts object storage to the jobs module's presigning
// needs. It implements jobs/service.ObjectStore.
type JobFileStore struct {
	inner storage.ObjectStorage
}

// NewJobFileStore creates the adapter.
func NewJobFileStore(inner storage.ObjectStorage) *JobFileStore {
	return &JobFileStore{inner: inner}
}

var _ jobsvc.ObjectStore = (*JobFileStore)(nil)

// GenerateUploadURL creates a presigned PUT URL under the given folder.
func (a *JobFileStore) GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*jobsvc.PresignedFile, error) {
	presigned, err := a.inner.GenerateUploadURL(ctx, bucket, folder, fileName, contentType, sizeBytes)
	if err != nil {
		return nil, err
	}
	return &jobsvc.PresignedFile{
		URL:       presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

// GenerateDownloadURL creates a presigned GET URL for a file key.
func (a *JobFileStore) GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*jobsvc.PresignedFile, error) {
	presigned, err := a.inner.GenerateDownloadURL(ctx, bucket, fileKey)
	if err != nil {
		return nil, err
	}
	return &jobsvc.PresignedFile{
		URL:       presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

// CertificateFileStore adapts object storage to the certificate
// generator. It implements certificates/service.ObjectStore.
type CertificateFileStore struct {
	inner storage.ObjectStorage
}

// NewCertificateFileStore creates the adapter.
func NewCertificateFileStore(inner storage.ObjectStorage) *CertificateFileStore {
	return &CertificateFileStore{inner: inner}
}

var _ certsvc.ObjectStore = (*CertificateFileStore)(nil)

// UploadObject writes PDF bytes at an exact per-job key.
func (a *CertificateFileStore) UploadObject(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error {
	return a.inner.PutObject(ctx, bucket, key, contentType, body, size)
}

// GenerateDownloadURL returns a short-lived URL for a stored PDF.
func (a *CertificateFileStore) GenerateDownloadURL(ctx context.Context, bucket, key string) (string, error) {
	presigned, err := a.inner.GenerateDownloadURL(ctx, bucket, key)
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}
