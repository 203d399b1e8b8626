// Package dto defines the wire envelope. Every body carries an `ok`
// flag; failures carry a human-readable `message` and nothing else.
package dto

// OKResponse is the base envelope embedded by all success bodies
type OKResponse struct {
	OK bool `json:"ok"`
}

// MessageResponse is a success body with only a message
type MessageResponse struct {
	OKResponse
	Message string `json:"message"`
}

// ErrorResponse is the uniform failure body
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// NewMessageResponse creates a success body with a message
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{OKResponse: OKResponse{OK: true}, Message: message}
}

// NewErrorResponse creates a failure body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{OK: false, Message: message}
}
