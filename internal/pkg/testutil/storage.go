package testutil

import (
	"context"
	"fmt"
	"io"
	"mediscan-service/internal/app/contracts"
	"sync"
)

const StorageBaseUrl = "http://storage.test"

type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte

	UploadErr error
}

var _ contracts.Storage = (*Storage)(nil)

func NewStorage() *Storage {
	return &Storage{Objects: map[string][]byte{}}
}

func (s *Storage) UploadFile(ctx context.Context, file io.Reader, size int64, bucketName, objectName, contentType string) (string, error) {
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s/%s", bucketName, objectName)
	s.Objects[key] = data
	return fmt.Sprintf("%s/%s", StorageBaseUrl, key), nil
}
