package errors

// ErrorCode is the application level error code returned in API responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Analysis pipeline
	ErrorCode_ANALYSIS_NO_CORPUS       ErrorCode = 3000
	ErrorCode_ANALYSIS_NOT_FOUND       ErrorCode = 3001
	ErrorCode_AI_ANALYSIS_FAILED       ErrorCode = 3002
	ErrorCode_AI_QUOTA_EXCEEDED        ErrorCode = 3004
	ErrorCode_ANALYSIS_JOB_NOT_FOUND   ErrorCode = 3005
	ErrorCode_ANALYSIS_ALREADY_RUNNING ErrorCode = 3006

	// Video / channel
	ErrorCode_VIDEO_NOT_FOUND ErrorCode = 4000

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5000
	ErrorCode_INTEGRATION_QUEUE_FAILED   ErrorCode = 5002

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 6001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_ANALYSIS_NO_CORPUS:         "ANALYSIS_NO_CORPUS",
	ErrorCode_ANALYSIS_NOT_FOUND:         "ANALYSIS_NOT_FOUND",
	ErrorCode_AI_ANALYSIS_FAILED:         "AI_ANALYSIS_FAILED",
	ErrorCode_AI_QUOTA_EXCEEDED:          "AI_QUOTA_EXCEEDED",
	ErrorCode_ANALYSIS_JOB_NOT_FOUND:     "ANALYSIS_JOB_NOT_FOUND",
	ErrorCode_ANALYSIS_ALREADY_RUNNING:   "ANALYSIS_ALREADY_RUNNING",
	ErrorCode_VIDEO_NOT_FOUND:            "VIDEO_NOT_FOUND",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_QUEUE_FAILED:   "INTEGRATION_QUEUE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
