package utils

import (
	"fmt"
	"mediscan-service/internal/pkg/constvars"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateFileName builds a unique object name, e.g.
// result_<bookingID>_20240101_120000.000000000_<uuid>.pdf
func GenerateFileName(prefix, owner, fileExtension string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s_%s_%s_%s%s", prefix, owner, timestamp, uuid.NewString(), fileExtension)
}

func FileExtension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}
