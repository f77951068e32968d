package utils

import (
	"errors"
	"fmt"
	"mediscan-service/internal/pkg/constvars"
	"net/http"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}

	if !primitive.IsValidObjectID(param) {
		return fmt.Errorf("parameter %q is not a valid object ID", param)
	}

	return nil
}

// ValidateResultFile accepts PDF documents up to maxSizeInMegabytes.
func ValidateResultFile(fileName string, data []byte, maxSizeInMegabytes int) error {
	if len(data) == 0 {
		return errors.New("result file is empty")
	}

	if len(data) > maxSizeInMegabytes*1024*1024 {
		return fmt.Errorf("result file exceeds maximum allowed size of %dMB", maxSizeInMegabytes)
	}

	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return errors.New("invalid file format, only .pdf is allowed")
	}

	if http.DetectContentType(data) != constvars.MIMEApplicationPDF {
		return errors.New("file content is not a PDF document")
	}

	return nil
}
