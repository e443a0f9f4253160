package dto

// ErrorResponse is the standard error body returned by every handler
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  "error",
		Message: message,
	}
}

// MessageResponse is the standard success body for operations that return
// no payload
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewMessageResponse creates a standard success response
func NewMessageResponse(message string) *MessageResponse {
	return &MessageResponse{
		Status:  "success",
		Message: message,
	}
}
