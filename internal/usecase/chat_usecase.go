package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/pkg/apperror"
	"go-careercompass-backend/pkg/events"
)

const (
	// chatWindowSize caps the retained display window.
	chatWindowSize = 20
	// chatContextTurns bounds the prior context forwarded per request.
	chatContextTurns = 9

	chatFallbackMessage = "Sorry, I couldn't process your request. Please try again later."
)

// chatWindow is one identity's retained conversation. gen increments on
// every reset so a reply that raced a sign-out can be detected and dropped.
type chatWindow struct {
	gen      int
	messages []domain.ChatMessage
}

type chatUsecase struct {
	assistant domain.AssistantClient
	events    *events.Logger

	mu      sync.Mutex
	windows map[string]*chatWindow
	gens    map[string]int
}

func NewChatUsecase(client domain.AssistantClient, ev *events.Logger) domain.ChatUsecase {
	return &chatUsecase{
		assistant: client,
		events:    ev,
		windows:   make(map[string]*chatWindow),
		gens:      make(map[string]int),
	}
}

// Send appends the user message, forwards it with the bounded context window
// and appends the reply. A responder failure leaves the window intact and
// appends a single fallback message; there is no dangling processing state.
func (u *chatUsecase) Send(ctx context.Context, userID, message string) ([]domain.ChatMessage, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.BadRequest("message is required")
	}

	u.mu.Lock()
	w, ok := u.windows[userID]
	if !ok {
		w = &chatWindow{gen: u.gens[userID]}
		u.windows[userID] = w
	}
	gen := w.gen

	history := lastN(w.messages, chatContextTurns)
	w.messages = appendCapped(w.messages, domain.ChatMessage{
		Role:    domain.ChatRoleUser,
		Content: message,
	})
	u.mu.Unlock()

	started := time.Now()
	reply, err := u.assistant.Reply(ctx, message, history)
	u.events.Latency(events.ComponentChat, "chat_request", time.Since(started))

	u.mu.Lock()
	defer u.mu.Unlock()

	// A reset (sign-out) while the request was in flight invalidates the
	// window; the late reply must be discarded, not applied.
	current, stillThere := u.windows[userID]
	if !stillThere || current != w || current.gen != gen {
		return nil, apperror.Unauthorized("session ended")
	}

	if err != nil {
		u.events.Failure(events.ComponentChat, userID, apperror.KindChatRequest, err)
		reply = chatFallbackMessage
	}

	w.messages = appendCapped(w.messages, domain.ChatMessage{
		Role:    domain.ChatRoleAssistant,
		Content: reply,
	})

	out := make([]domain.ChatMessage, len(w.messages))
	copy(out, w.messages)
	return out, nil
}

func (u *chatUsecase) Messages(userID string) []domain.ChatMessage {
	u.mu.Lock()
	defer u.mu.Unlock()

	w, ok := u.windows[userID]
	if !ok {
		return []domain.ChatMessage{}
	}
	out := make([]domain.ChatMessage, len(w.messages))
	copy(out, w.messages)
	return out
}

func (u *chatUsecase) Reset(userID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.gens[userID]++
	delete(u.windows, userID)
}

func lastN(msgs []domain.ChatMessage, n int) []domain.ChatMessage {
	start := 0
	if len(msgs) > n {
		start = len(msgs) - n
	}
	out := make([]domain.ChatMessage, len(msgs)-start)
	copy(out, msgs[start:])
	return out
}

func appendCapped(msgs []domain.ChatMessage, m domain.ChatMessage) []domain.ChatMessage {
	msgs = append(msgs, m)
	if len(msgs) > chatWindowSize {
		msgs = msgs[len(msgs)-chatWindowSize:]
	}
	return msgs
}
