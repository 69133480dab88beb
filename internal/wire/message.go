package wire

// Roles understood by the forwarder and the vendor APIs.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of a conversation.
type Message struct {
	// Role is who sent the message, e.g. "user" or "assistant".
	Role string `json:"role"`
	// Content is the text of the message.
	Content string `json:"content"`
}

// UserMessage builds a message typed by the user.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds a message produced by the model.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ForwardRequest is the body a client POSTs to a forwarder route.
// Messages is the canonical shape; Message is the older single-string variant.
type ForwardRequest struct {
	Messages []Message `json:"messages,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// Conversation returns the ordered history carried by the request.
// A lone Message is wrapped as a single user turn.
func (r ForwardRequest) Conversation() []Message {
	if len(r.Messages) > 0 {
		return r.Messages
	}
	if r.Message != "" {
		return []Message{UserMessage(r.Message)}
	}
	return nil
}

// ContentResponse is the batch-mode success body.
type ContentResponse struct {
	Content string `json:"content"`
}

// ErrorResponse is the body of every structured error the forwarder returns.
type ErrorResponse struct {
	Error string `json:"error"`
}
