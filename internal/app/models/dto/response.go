package dto

// MessageResponse represents a plain success message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents the standard error shape. The message is always
// safe to show to a client; internal detail stays in the logs.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}
