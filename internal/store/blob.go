package store

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// BlobStore holds uploaded binary objects (avatars, gallery images) and
// returns a public URL for each.
type BlobStore interface {
	Upload(ctx context.Context, principalID, filename string, data []byte) (string, error)
}

type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
}

type OSSBlobStore struct {
	bucket   *oss.Bucket
	endpoint string
	name     string
}

func NewOSSBlobStore(cfg OSSConfig) (*OSSBlobStore, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create oss client: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open oss bucket: %w", err)
	}
	return &OSSBlobStore{bucket: bucket, endpoint: cfg.Endpoint, name: cfg.Bucket}, nil
}

func (s *OSSBlobStore) Upload(ctx context.Context, principalID, filename string, data []byte) (string, error) {
	key := objectKey(principalID, filename)
	if err := s.bucket.PutObject(key, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.name, s.endpoint, key), nil
}

// objectKey namespaces objects per principal and randomizes the name so
// re-uploads never collide with cached URLs.
func objectKey(principalID, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("uploads/%s/%s%s", principalID, uuid.NewString(), ext)
}

// MemoryBlobStore keeps uploads in memory for tests.
type MemoryBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Upload(ctx context.Context, principalID, filename string, data []byte) (string, error) {
	key := objectKey(principalID, filename)
	s.mu.Lock()
	s.objects[key] = append([]byte(nil), data...)
	s.mu.Unlock()
	return "memory://" + key, nil
}

func (s *MemoryBlobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
