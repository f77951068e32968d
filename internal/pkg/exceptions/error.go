package exceptions

import (
	"errors"
	"fmt"
	"mediscan-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	ErrorCode     string     `json:"error_code,omitempty"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	err           error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.err
}

// WithErrorCode overrides the code derived from the status code.
func (e *CustomError) WithErrorCode(code string) *CustomError {
	e.ErrorCode = code
	return e
}

// BuildNewCustomError wraps err with client facing details. When err already
// is a CustomError the original is kept and only the caller location is added,
// so the first classification wins as the error travels up.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)

	var customErr *CustomError
	if errors.As(err, &customErr) {
		customErr.Locations = append(customErr.Locations, location)
		return customErr
	}

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		ErrorCode:     errorCodeFromStatus(statusCode),
		DevMessage:    devMessage,
		Locations:     []Location{location},
		err:           err,
	}
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		ErrorCode:     errorCodeFromStatus(statusCode),
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(2)},
	}
}

// HasErrorCode reports whether err carries a CustomError with the given code.
func HasErrorCode(err error, code string) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.ErrorCode == code
	}
	return false
}

func errorCodeFromStatus(statusCode int) string {
	switch statusCode {
	case constvars.StatusBadRequest, constvars.StatusUnprocessableEntity, constvars.StatusRequestEntityTooLarge:
		return constvars.ErrCodeValidation
	case constvars.StatusUnauthorized:
		return constvars.ErrCodeUnauthenticated
	case constvars.StatusForbidden:
		return constvars.ErrCodeForbidden
	case constvars.StatusNotFound:
		return constvars.ErrCodeNotFound
	case constvars.StatusConflict:
		return constvars.ErrCodeConflict
	case constvars.StatusTooManyRequests:
		return constvars.ErrCodeRateLimited
	case constvars.StatusBadGateway:
		return constvars.ErrCodeGatewayError
	case constvars.StatusGatewayTimeout:
		return constvars.ErrCodeTimeout
	default:
		return constvars.ErrCodeInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ErrFileLocationUnknown,
			Line:         0,
			FunctionName: constvars.ErrFunctionNameUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
