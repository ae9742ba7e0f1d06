package utils

// ErrorResponse is the error envelope used by every route. The message is
// client-facing; internal error detail stays in the log.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// MessageResponse is the write-operation acknowledgement. PromptID is only
// present on creation.
type MessageResponse struct {
	Message  string `json:"message"`
	PromptID string `json:"prompt_id,omitempty"`
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

func NewCreatedResponse(message, promptID string) MessageResponse {
	return MessageResponse{Message: message, PromptID: promptID}
}
