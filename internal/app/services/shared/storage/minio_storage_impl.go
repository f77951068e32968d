package storage

import (
	"context"
	"fmt"
	"io"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/exceptions"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient   *minio.Client
	PublicBaseUrl string
}

func NewMinioStorage(minioClient *minio.Client, publicBaseUrl string) contracts.Storage {
	return &minioStorage{
		MinioClient:   minioClient,
		PublicBaseUrl: strings.TrimSuffix(publicBaseUrl, "/"),
	}
}

func (m *minioStorage) UploadFile(ctx context.Context, file io.Reader, size int64, bucketName, objectName, contentType string) (string, error) {
	_, err := m.MinioClient.PutObject(ctx, bucketName, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return fmt.Sprintf("%s/%s/%s", m.PublicBaseUrl, bucketName, url.PathEscape(objectName)), nil
}
