package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the error type surfaced to API callers
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal server error",
		Timestamp: time.Now(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_NOT_FOUND,
		Message:   fmt.Sprintf("%s not found", resource),
		Timestamp: time.Now(),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_PAYLOAD,
		Message:   "Invalid payload",
		Timestamp: time.Now(),
	}
}

// Video / channel errors
func ErrInvalidVideoID(videoID string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   fmt.Sprintf("Invalid video_id %q", videoID),
		Timestamp: time.Now(),
	}.WithDetail("video_id", videoID)
}

func ErrVideoNotFound(videoID string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_VIDEO_NOT_FOUND,
		Message:   fmt.Sprintf("Video %q not found", videoID),
		Timestamp: time.Now(),
	}.WithDetail("video_id", videoID)
}

// Analysis errors
func ErrNoCorpus(videoID string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Code:      ErrorCode_ANALYSIS_NO_CORPUS,
		Message:   "No comments fetched yet; queue comments first.",
		Timestamp: time.Now(),
	}.WithDetail("video_id", videoID)
}

func ErrAnalysisNotFound(videoID string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_ANALYSIS_NOT_FOUND,
		Message:   "No analysis found",
		Timestamp: time.Now(),
	}.WithDetail("video_id", videoID)
}

func ErrAnalysisJobNotFound(jobID string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_ANALYSIS_JOB_NOT_FOUND,
		Message:   "Analysis job not found",
		Timestamp: time.Now(),
	}.WithDetail("job_id", jobID)
}

func ErrAnalysisAlreadyRunning(videoID string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Code:      ErrorCode_ANALYSIS_ALREADY_RUNNING,
		Message:   "An analysis for this video is already running",
		Timestamp: time.Now(),
	}.WithDetail("video_id", videoID)
}

func ErrAIAnalysisFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_AI_ANALYSIS_FAILED,
		Message:   "Analysis unavailable, retry",
		Timestamp: time.Now(),
	}
}

func ErrAIQuotaExceeded() AppError {
	return AppError{
		HTTPCode:  http.StatusTooManyRequests,
		Code:      ErrorCode_AI_QUOTA_EXCEEDED,
		Message:   "AI service quota exceeded",
		Timestamp: time.Now(),
	}
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:   fmt.Sprintf("Storage operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

func ErrQueueFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_QUEUE_FAILED,
		Message:   fmt.Sprintf("Queue operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

// Database Errors
func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_QUERY_FAILED,
		Message:   "Database query failed",
		Timestamp: time.Now(),
	}.WithDetail("query", query)
}
