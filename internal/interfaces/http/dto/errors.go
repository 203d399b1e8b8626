package dto

import "net/http"

// Domain error codes surfaced over HTTP
const (
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeSMSDisabled         = "SMS_DISABLED"
	ErrCodeOTPNotFound         = "OTP_NOT_FOUND"
	ErrCodeOTPUsed             = "OTP_USED"
	ErrCodeOTPExpired          = "OTP_EXPIRED"
	ErrCodeOTPInvalid          = "OTP_INVALID"
	ErrCodeOTPAttemptsExceeded = "OTP_ATTEMPTS_EXHAUSTED"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeInvalidToken        = "INVALID_TOKEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMailFailed          = "MAIL_FAILED"
	ErrCodeUpstreamFailed      = "UPSTREAM_FAILED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeSMSDisabled:         http.StatusBadRequest,
	ErrCodeOTPNotFound:         http.StatusBadRequest,
	ErrCodeOTPUsed:             http.StatusBadRequest,
	ErrCodeOTPExpired:          http.StatusBadRequest,
	ErrCodeOTPInvalid:          http.StatusBadRequest,
	ErrCodeOTPAttemptsExceeded: http.StatusTooManyRequests,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeInvalidToken:        http.StatusUnauthorized,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeMailFailed:          http.StatusInternalServerError,
	ErrCodeUpstreamFailed:      http.StatusInternalServerError,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
