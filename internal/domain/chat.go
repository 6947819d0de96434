package domain

import "context"

// ============================================================================
// Conversation Assistant (boundary only)
// ============================================================================

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AssistantClient forwards one user message plus bounded prior context to
// the external responder and returns its reply.
type AssistantClient interface {
	Reply(ctx context.Context, message string, history []ChatMessage) (string, error)
}

type ChatUsecase interface {
	// Send appends the user message, calls the responder with the bounded
	// context window and returns the updated window. A responder failure
	// appends a fallback message instead of corrupting the window.
	Send(ctx context.Context, userID, message string) ([]ChatMessage, error)
	// Messages returns the retained display window.
	Messages(userID string) []ChatMessage
	// Reset drops the window; an in-flight reply arriving after Reset is
	// discarded.
	Reset(userID string)
}
