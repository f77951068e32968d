package utils

import (
	"errors"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BuildErrorResponse writes the error envelope. Anything that is not a
// CustomError is reported as INTERNAL with a generic message. Dev messages and
// call locations only leave the process outside production.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	envelope := exceptions.CustomError{
		StatusCode:    constvars.StatusInternalServerError,
		ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		ErrorCode:     constvars.ErrCodeInternal,
	}

	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) {
		if err != nil {
			log.Error("unclassified error", zap.Error(err))
		}
		writeJSON(w, envelope.StatusCode, envelope)
		return
	}

	envelope.StatusCode = customErr.StatusCode
	envelope.ClientMessage = customErr.ClientMessage
	envelope.ErrorCode = customErr.ErrorCode

	fields := []zap.Field{
		zap.String(constvars.LoggingErrorCodeKey, customErr.ErrorCode),
		zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode),
		zap.Any("locations", customErr.Locations),
	}
	if customErr.StatusCode >= constvars.StatusInternalServerError {
		log.Error(customErr.DevMessage, fields...)
	} else {
		log.Warn(customErr.DevMessage, fields...)
	}

	if GetEnvString("APP_ENV", constvars.AppEnvDevelopment) != constvars.AppEnvProduction {
		envelope.DevMessage = customErr.DevMessage
		envelope.Locations = customErr.Locations
	}
	writeJSON(w, envelope.StatusCode, envelope)
}
