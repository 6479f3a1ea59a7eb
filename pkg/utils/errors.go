package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

// NewJobNotFoundError marks a job id that could not be resolved through any
// tier. Callers treat this as "no longer available", not a server fault.
func NewJobNotFoundError(jobID string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: "Job not found",
		Detail:  fmt.Sprintf("job %s is no longer available or has expired", jobID),
	}
}

// NewUpstreamError covers job source and LLM provider failures that degrade
// rather than abort a request.
func NewUpstreamError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Upstream service failed",
		Detail:  detail,
	}
}

