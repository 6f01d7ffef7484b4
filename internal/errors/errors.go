package errors

import "fmt"

// APIError represents a structured API error with an HTTP status code.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func Validation(msg string) *APIError {
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: msg,
		Status:  400,
	}
}

func NotFound(resource, id string) *APIError {
	return &APIError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
		Status:  404,
	}
}

func MethodNotAllowed(method string) *APIError {
	return &APIError{
		Code:    "METHOD_NOT_ALLOWED",
		Message: fmt.Sprintf("method %s not allowed", method),
		Status:  405,
	}
}

func PayloadTooLarge(limit int64) *APIError {
	return &APIError{
		Code:    "PAYLOAD_TOO_LARGE",
		Message: fmt.Sprintf("request body must be at most %d bytes", limit),
		Status:  413,
	}
}

func Internal(msg string) *APIError {
	return &APIError{
		Code:    "INTERNAL_ERROR",
		Message: msg,
		Status:  500,
	}
}
