package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeOTPInvalid))
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus(ErrCodeOTPAttemptsExceeded))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_NEW"))
}

func TestEnvelopeShapes(t *testing.T) {
	success, err := json.Marshal(NewMessageResponse("OTP sent"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"message":"OTP sent"}`, string(success))

	failure, err := json.Marshal(NewErrorResponse("Invalid OTP"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"message":"Invalid OTP"}`, string(failure))
}
