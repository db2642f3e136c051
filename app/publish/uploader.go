package publish

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Uploader stores one object.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) error
}

var (
	_ Uploader = (*GCSUploader)(nil)
	_ Uploader = (*MemoryUploader)(nil)
)

// GCSUploader writes objects to a Cloud Storage bucket.
type GCSUploader struct {
	client     *storage.Client
	bucketName string
}

// NewGCSUploader uses application default credentials unless credentialsFile
// is set.
func NewGCSUploader(ctx context.Context, bucketName, credentialsFile string) (*GCSUploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSUploader{client: client, bucketName: bucketName}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, name, contentType string, data []byte) error {
	writer := u.client.Bucket(u.bucketName).Object(name).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache, max-age=0"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write object %s: %w", name, err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close object writer %s: %w", name, err)
	}

	return nil
}

func (u *GCSUploader) Close() error {
	return u.client.Close()
}

type MemoryObject struct {
	ContentType string
	Data        []byte
}

// MemoryUploader keeps uploaded objects in memory.
type MemoryUploader struct {
	mu      sync.Mutex
	Objects map[string]MemoryObject
	Err     error
}

func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{Objects: make(map[string]MemoryObject)}
}

func (u *MemoryUploader) Upload(ctx context.Context, name, contentType string, data []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Err != nil {
		return u.Err
	}
	u.Objects[name] = MemoryObject{ContentType: contentType, Data: append([]byte(nil), data...)}
	return nil
}
