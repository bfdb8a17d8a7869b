package types

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation. Ordering in a slice is chronological.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []Message `json:"messages"`
}

type ChatResponse struct {
	Message *Message `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// UpstreamErrorResponse passes a rejected upstream call through to the caller.
type UpstreamErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type InternalErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
