package contracts

import (
	"context"
	"io"
)

type Storage interface {
	// UploadFile stores the object and returns a link to it.
	UploadFile(ctx context.Context, file io.Reader, size int64, bucketName, objectName, contentType string) (string, error)
}
