package entity

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode машинный код ошибки, по которому подбирается сообщение пользователю
type ErrorCode string

const (
	CodeNoImageSelected      ErrorCode = "NO_IMAGE_SELECTED"
	CodeImageTooLarge        ErrorCode = "IMAGE_TOO_LARGE"
	CodeUnsupportedImageType ErrorCode = "UNSUPPORTED_IMAGE_TYPE"
	CodeLocationRequired     ErrorCode = "LOCATION_REQUIRED"

	CodeLocationUnsupported         ErrorCode = "UNSUPPORTED"
	CodeLocationDeniedOrUnavailable ErrorCode = "DENIED_OR_UNAVAILABLE"

	CodeEmptyResponse     ErrorCode = "EMPTY_RESPONSE"
	CodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	CodeServiceError      ErrorCode = "SERVICE_ERROR"

	CodeSubmitFailed ErrorCode = "SUBMIT_FAILED"
)

// ErrInvalidTransition операция недопустима в текущем состоянии отчёта
var ErrInvalidTransition = errors.New("operation is not allowed in current report status")

// InputError ошибка пользовательского ввода
type InputError struct {
	Code ErrorCode
}

func (e *InputError) Error() string {
	return "input error: " + string(e.Code)
}

// LocationError ошибка получения координат
type LocationError struct {
	Code ErrorCode
	Err  error // исходная ошибка провайдера, только для логов
}

func (e *LocationError) Error() string {
	if e.Err == nil {
		return "location error: " + string(e.Code)
	}
	return fmt.Sprintf("location error: %s: %v", e.Code, e.Err)
}

func (e *LocationError) Unwrap() error { return e.Err }

// AnalysisError ошибка анализа изображения
type AnalysisError struct {
	Code ErrorCode
	Err  error // исходная ошибка сервиса, только для логов
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return "analysis error: " + string(e.Code)
	}
	return fmt.Sprintf("analysis error: %s: %v", e.Code, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// CodeOf извлекает код из доменной ошибки; для прочих ошибок возвращает пустую строку
func CodeOf(err error) ErrorCode {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Code
	}
	var locErr *LocationError
	if errors.As(err, &locErr) {
		return locErr.Code
	}
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Code
	}
	return ""
}
