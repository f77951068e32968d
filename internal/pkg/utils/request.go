package utils

import (
	"io"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
)

// BuildUploadResultRequest reads the result document from a multipart form.
func BuildUploadResultRequest(r *http.Request, maxSizeInMegabytes int) (*requests.UploadResult, error) {
	maxMemory := int64(maxSizeInMegabytes) << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, err
	}

	file, fileHeader, err := r.FormFile(constvars.MultipartFormFieldResult)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxMemory+1))
	if err != nil {
		return nil, err
	}

	return &requests.UploadResult{
		File:        data,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(constvars.HeaderContentType),
	}, nil
}

// ParseBoolQueryParam returns false when the parameter is absent or invalid.
func ParseBoolQueryParam(r *http.Request, key string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return false
	}
	return value
}
